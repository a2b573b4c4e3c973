package repository

import (
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

func (r *Repository) InsertSubmission(submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	submissions, err := r.loadSubmissions()
	if err != nil {
		return err
	}

	submission.ID = uuid.New().String()
	submission.CreatedAt = time.Now()
	submissions = append(submissions, submission)

	return r.writeFileAtomic(r.submissionsPath(), submissions)
}

func (r *Repository) GetAllSubmissions() ([]*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadSubmissions()
}

func (r *Repository) loadSubmissions() ([]*domain.Submission, error) {
	submissions := make([]*domain.Submission, 0)
	if err := r.readFileJSON(r.submissionsPath(), &submissions); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// 还没有任何投稿
			return submissions, nil
		}
		return nil, err
	}

	return submissions, nil
}

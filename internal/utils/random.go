package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/advent-calendar/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"
var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateSlugFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	return strings.Join(pinyinArray, "")
}

// 生成一条随机的媒体链接，自建文件服务器上的路径用姓名的拼音
func GenerateRandomMediaLink(name string) string {
	switch rand.Intn(3) {
	case 0:
		return "https://www.bilibili.com/video/BV" + GenerateRandomID(6, 4)
	case 1:
		return fmt.Sprintf("https://music.163.com/#/song?id=%d", rand.Intn(900000000)+1000000)
	default:
		return fmt.Sprintf("https://media.ecnc.link/%s/%s.mp3", GenerateSlugFromChineseName(name), GenerateRandomID(0, 4))
	}
}

// 随机生成一份投稿，ID 和创建时间由 repository 在插入时填充
func GenerateRandomSubmission() *domain.Submission {
	name := GenerateRandomChineseName()

	linksNum := rand.Intn(4) + 2 // 2~5 条
	links := make([]string, linksNum)
	for i := range links {
		links[i] = GenerateRandomMediaLink(name)
	}

	return &domain.Submission{
		Name:  name,
		Links: links,
	}
}

package storage

import (
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const maxNameBytes = 100

var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
)

// generateFilename 저장 이름을 파일 시스템에 안전한 kebab-case 파일명으로 바꿉니다.
//
//	"lastStockMessages" → "last-stock-messages.json"
//	"../etc/passwd"     → "--etc-passwd.json" 와 같이 경로 구분자가 제거됨
func generateFilename(name string) string {
	return sanitizeFilename(strcase.ToKebab(strings.TrimSpace(name)))
}

// legacyFilename 이름을 변환하지 않은 파일명입니다. ("lastStockMessages" → "lastStockMessages.json")
func legacyFilename(name string) string {
	return sanitizeFilename(strings.TrimSpace(name))
}

func sanitizeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, s)
	s = filenameReplacer.Replace(s)
	s = truncateByBytes(s, maxNameBytes)
	if s == "" {
		return ""
	}
	return s + ".json"
}

// truncateByBytes 멀티바이트 문자가 잘리지 않도록 룬 경계에서 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if n+size > limit {
			break
		}
		n += size
	}
	return s[:n]
}

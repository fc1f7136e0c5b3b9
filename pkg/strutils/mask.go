// Package strutils 문자열 처리 유틸리티를 제공합니다.
package strutils

import (
	"net/url"
	"strings"
)

// Mask 토큰 등 민감한 문자열을 로그에 남길 수 있도록 가립니다.
//
//	""                → ""
//	"abc"             → "***"
//	"abcdefgh"        → "abcd***"
//	"1234567890:ABCD…" → "1234***…" (앞 4자 + 뒤 4자)
func Mask(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 3:
		return "***"
	case len(s) <= 12:
		return s[:4] + "***"
	default:
		return s[:4] + "***" + s[len(s)-4:]
	}
}

// MaskURLPath URL의 호스트는 남기고 경로를 가립니다.
// 웹훅 주소처럼 경로 자체가 비밀 토큰인 URL을 로그에 남길 때 사용합니다.
func MaskURLPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Mask(raw)
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/" + Mask(path)
}

package stock

import (
	"strings"
)

// ExtractObject text에서 "key" 뒤에 오는 첫 번째 JSON 객체를 잘라내 반환합니다.
//
// 완전한 JSON 파서가 아니라, 키 위치를 찾은 뒤 중괄호 깊이를 세어 객체의 끝을 찾는 관용적인 스캐너입니다.
// 문자열 리터럴 안의 중괄호와 이스케이프 문자는 건너뛰며, 객체 뒤에 이어지는 내용은 무시합니다.
//
// 키, 그 뒤의 콜론, 여는 중괄호 중 하나라도 없으면 ErrMarkerNotFound 계열 에러를,
// 객체가 닫히지 않은 채 입력이 끝나면 ErrUnbalancedObject 계열 에러를 반환합니다.
func ExtractObject(text, key string) (string, error) {
	keyPos := strings.Index(text, `"`+key+`"`)
	if keyPos == -1 {
		return "", NewErrMarkerNotFound(key)
	}

	rest := text[keyPos+len(key)+2:]
	colon := strings.IndexByte(rest, ':')
	if colon == -1 {
		return "", NewErrMarkerNotFound(key)
	}
	rest = rest[colon+1:]

	open := strings.IndexByte(rest, '{')
	if open == -1 {
		return "", NewErrMarkerNotFound(key)
	}
	rest = rest[open:]

	end, ok := scanObject(rest)
	if !ok {
		return "", NewErrUnbalancedObject(key)
	}
	return rest[:end], nil
}

// scanObject s[0]이 '{'일 때, 짝이 맞는 '}' 다음 위치를 반환합니다.
func scanObject(s string) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

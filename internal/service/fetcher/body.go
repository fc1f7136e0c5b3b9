package fetcher

import (
	"io"
	"mime"
	"net/http"
	"sync"

	"golang.org/x/net/html/charset"
)

// maxDrainBytes 커넥션 재사용을 위해 Body를 비울 때 읽는 최대 크기입니다.
// 이보다 큰 응답의 커넥션은 재사용하지 않고 닫습니다.
const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody Keep-Alive 커넥션이 풀로 돌아갈 수 있도록 Body를 일정량 비운 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}

// ReadText 응답 본문 전체를 UTF-8 문자열로 읽습니다. Body는 닫지 않습니다.
//
// Content-Type에 charset이 명시된 경우에만 변환하고, 없으면 UTF-8로 간주합니다.
// charset 자동 판별은 앞부분이 ASCII뿐인 UTF-8 본문을 windows-1252로 오인할 수 있기 때문입니다.
func ReadText(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body

	contentType := resp.Header.Get("Content-Type")
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		cr, err := charset.NewReader(resp.Body, contentType)
		if err != nil {
			return "", NewErrDecodeBody(err)
		}
		r = cr
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", NewErrReadBody(err)
	}
	return string(b), nil
}

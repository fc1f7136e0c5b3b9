package stock

import (
	"testing"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr apperrors.ErrorType
	}{
		{
			name: "기본",
			text: `1:["$","div",null,{"stockDataSSR":{"gearStock":[]}}]`,
			want: `{"gearStock":[]}`,
		},
		{
			name: "중첩 객체",
			text: `"stockDataSSR": {"a":{"b":{"c":1}},"d":2} trailing`,
			want: `{"a":{"b":{"c":1}},"d":2}`,
		},
		{
			name: "뒤따르는 잘못된 내용 무시",
			text: `"stockDataSSR":{"a":1}}}}{{ garbage`,
			want: `{"a":1}`,
		},
		{
			name: "문자열 안의 중괄호",
			text: `"stockDataSSR":{"name":"Weird } Item {","v":"a\"}b"} rest`,
			want: `{"name":"Weird } Item {","v":"a\"}b"}`,
		},
		{
			name:    "키 없음",
			text:    `{"other":{}}`,
			wantErr: apperrors.NotFound,
		},
		{
			name:    "콜론 없음",
			text:    `"stockDataSSR"`,
			wantErr: apperrors.NotFound,
		},
		{
			name:    "여는 중괄호 없음",
			text:    `"stockDataSSR": null`,
			wantErr: apperrors.NotFound,
		},
		{
			name:    "닫히지 않은 객체",
			text:    `"stockDataSSR":{"gearStock":[{"name":"x"`,
			wantErr: apperrors.ParsingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractObject(tt.text, "stockDataSSR")
			if tt.wantErr != apperrors.Unknown {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantErr), "에러 타입 불일치: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

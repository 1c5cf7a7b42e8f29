package decoder

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/pkg/errors"
)

type JsonDecoderOptions struct {
	// UseJSON5 允许 // 和 /* */ 注释以及尾随逗号
	UseJSON5 bool `cfg:"useJSON5"`
}

// JsonDecoder JSON 格式解码器
type JsonDecoder struct {
	useJSON5 bool
}

func NewJsonDecoderWithOptions(options *JsonDecoderOptions) *JsonDecoder {
	if options == nil {
		return &JsonDecoder{}
	}
	return &JsonDecoder{useJSON5: options.UseJSON5}
}

func (j *JsonDecoder) Decode(data []byte) (storage.Storage, error) {
	if j.useJSON5 {
		data = []byte(stripJSON5(string(data)))
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed")
	}
	return storage.NewMapStorage(result), nil
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// stripJSON5 去掉字符串之外的注释和尾随逗号
func stripJSON5(content string) string {
	var sb strings.Builder
	inString, escaped := false, false

	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			sb.WriteByte(c)
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

		switch {
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				sb.WriteByte('\n')
			}
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				i = len(content)
			} else {
				i += end + 3
			}
		default:
			sb.WriteByte(c)
		}
	}

	return trailingComma.ReplaceAllString(sb.String(), "$1")
}

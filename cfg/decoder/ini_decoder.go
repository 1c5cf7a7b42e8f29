package decoder

import (
	"strconv"
	"strings"

	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type IniDecoderOptions struct {
	// AllowShadows 重复的键解码为数组
	AllowShadows bool `cfg:"allowShadows" def:"true"`
}

// IniDecoder INI 格式解码器
// section 名中的 "." 表示嵌套，例如 [logger.output] 对应 logger.output
type IniDecoder struct {
	allowShadows bool
}

func NewIniDecoderWithOptions(options *IniDecoderOptions) *IniDecoder {
	if options == nil {
		return &IniDecoder{allowShadows: true}
	}
	return &IniDecoder{allowShadows: options.AllowShadows}
}

func (d *IniDecoder) Decode(data []byte) (storage.Storage, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:         true,
		AllowShadows:             d.allowShadows,
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, errors.Wrap(err, "ini.LoadSources failed")
	}

	result := map[string]any{}
	for _, section := range file.Sections() {
		target := result
		if section.Name() != ini.DefaultSection {
			for _, part := range strings.Split(section.Name(), ".") {
				child, ok := target[part].(map[string]any)
				if !ok {
					child = map[string]any{}
					target[part] = child
				}
				target = child
			}
		}
		for _, key := range section.Keys() {
			target[key.Name()] = d.parseValue(key)
		}
	}

	return storage.NewMapStorage(result), nil
}

func (d *IniDecoder) parseValue(key *ini.Key) any {
	if d.allowShadows {
		if values := key.ValueWithShadows(); len(values) > 1 {
			result := make([]any, 0, len(values))
			for _, v := range values {
				result = append(result, parseScalar(v))
			}
			return result
		}
	}
	return parseScalar(key.String())
}

// parseScalar 尝试把字符串解析为 bool/int/float
func parseScalar(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

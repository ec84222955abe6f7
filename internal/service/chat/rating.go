package chat

import (
	"encoding/json"

	"github.com/pocketllm/portal/internal/model"
)

// RatingInput 评分输入
// 边界上同时接受字符串 "up"/"down" 和旧版数字 1-5，
// 进入领域逻辑前统一归一化为 up/down
type RatingInput struct {
	str string
	num float64
	has bool // num 是否有效
}

// UnmarshalJSON 接受字符串或数字
func (r *RatingInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.str = s
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		r.num = n
		r.has = true
		return nil
	}

	return ErrInvalidRating
}

// Normalize 归一化为 up/down
// 数字 >=3 视为 up，<3 视为 down；超出 1-5 或其他取值报 ErrInvalidRating
func (r *RatingInput) Normalize() (string, error) {
	if r.has {
		if r.num < 1 || r.num > 5 {
			return "", ErrInvalidRating
		}
		if r.num >= 3 {
			return model.RatingUp, nil
		}
		return model.RatingDown, nil
	}

	switch r.str {
	case model.RatingUp, model.RatingDown:
		return r.str, nil
	default:
		return "", ErrInvalidRating
	}
}

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/homecare/internal/model"
)

// updateField は部分更新のカラムと値（nilを許容するポインタ）の組。
type updateField struct {
	column string
	value  any
}

// buildUpdateSet は非nilのフィールドからSET句とプレースホルダ引数を構築する。
// 引数が空の場合、更新対象のフィールドが1つも指定されていないことを示す。
func buildUpdateSet(fields ...updateField) (string, []any) {
	var set []string
	var args []any
	for _, f := range fields {
		v, ok := derefUpdateValue(f.value)
		if !ok {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}
	return strings.Join(set, ", "), args
}

// derefUpdateValue はポインタを実値に変換する。nilポインタは更新対象外。
func derefUpdateValue(v any) (any, bool) {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *int:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *int64:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *time.Time:
		if p == nil {
			return nil, false
		}
		return *p, true
	case *model.Role:
		if p == nil {
			return nil, false
		}
		return string(*p), true
	case *model.BookingStatus:
		if p == nil {
			return nil, false
		}
		return string(*p), true
	case *model.PaymentStatus:
		if p == nil {
			return nil, false
		}
		return string(*p), true
	}
	return nil, false
}

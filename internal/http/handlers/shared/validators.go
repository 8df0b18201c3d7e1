package shared

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dlanguage-api/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// RegisterValidators 注册自定义校验规则与 json 字段名
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("schedule_date", validateScheduleDate); err != nil {
			registerValidatorsErr = err
			return
		}
		if err := v.RegisterValidation("ids_unique", validateIDsUnique); err != nil {
			registerValidatorsErr = err
		}
	})
	return registerValidatorsErr
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	}
	if name == "" {
		return field.Name
	}
	return name
}

// validateScheduleDate 日期格式 YYYY-MM-DD
func validateScheduleDate(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	_, err := models.ParseScheduleDate(raw)
	return err == nil
}

// validateIDsUnique ID 列表不得含 0 或重复项；空列表合法
func validateIDsUnique(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	seen := make(map[uint64]struct{}, field.Len())
	for i := 0; i < field.Len(); i++ {
		item := field.Index(i)
		var id uint64
		switch item.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			id = item.Uint()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if item.Int() <= 0 {
				return false
			}
			id = uint64(item.Int())
		default:
			return false
		}
		if id == 0 {
			return false
		}
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

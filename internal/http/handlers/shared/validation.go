package shared

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupValidatorOnce sync.Once

// SetupValidator 让校验错误使用 JSON 字段名。
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
}

// FormatValidationErrors 将绑定错误转换为字段级错误信息。
func FormatValidationErrors(c *gin.Context, err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			field := fe.Field()
			if field == "" {
				field = strings.ToLower(fe.StructField())
			}
			if _, exists := fields[field]; exists {
				continue
			}
			fields[field] = fieldErrorMessage(c, fe)
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = validationMessage(c, "validation.invalid")
	}
	return fields
}

// RespondBindError 返回请求体绑定失败的响应。
func RespondBindError(c *gin.Context, err error) {
	fields := FormatValidationErrors(c, err)
	if len(fields) == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	RespondValidation(c, fields)
}

// RespondValidation 返回字段级校验错误。
func RespondValidation(c *gin.Context, fields map[string]string) {
	response.ValidationError(c, i18n.T(i18n.ResolveLocale(c), "error.validation_failed"), fields)
}

func fieldErrorMessage(c *gin.Context, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return validationMessage(c, "validation.required")
	case "email":
		return validationMessage(c, "validation.email")
	case "min", "gte":
		return validationMessage(c, "validation.min", fe.Param())
	case "max", "lte":
		return validationMessage(c, "validation.max", fe.Param())
	case "oneof":
		return validationMessage(c, "validation.oneof", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return validationMessage(c, "validation.invalid")
	}
}

func validationMessage(c *gin.Context, key string, args ...interface{}) string {
	locale := i18n.ResolveLocale(c)
	if len(args) == 0 {
		return i18n.T(locale, key)
	}
	return i18n.Sprintf(locale, key, args...)
}

// RespondRequiredFields 返回缺少必填字段的校验错误。
func RespondRequiredFields(c *gin.Context, names ...string) {
	fields := make(map[string]string, len(names))
	for _, name := range names {
		fields[name] = validationMessage(c, "validation.required")
	}
	RespondValidation(c, fields)
}

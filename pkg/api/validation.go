package api

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/smith3v/reply-reminder/pkg/reminder"
)

const (
	tagPriority = "priority"
	tagWindow   = "reminder_window"
	tagStatus   = "message_status"
)

var registerOnce sync.Once

// registerValidators teaches gin's validator the domain enums and makes
// field errors report JSON names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation(tagPriority, func(fl validator.FieldLevel) bool {
			_, err := reminder.ParsePriority(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation(tagWindow, func(fl validator.FieldLevel) bool {
			_, err := reminder.ParseWindow(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation(tagStatus, func(fl validator.FieldLevel) bool {
			_, err := reminder.ParseStatus(fl.Field().String())
			return err == nil
		})
	})
}

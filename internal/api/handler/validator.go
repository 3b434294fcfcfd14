package handler

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义 tag：
//   - weekday：monday / Montag / Mo / 1 等写法
//   - clock：HH:MM 或 HH:MM:SS
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
	}
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		return err
	}
	return v.RegisterValidation("clock", validateClock)
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, err := weekcalc.ParseWeekday(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}

package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequest(fmt.Sprintf("invalid %s path parameter", name))
	}
	return id, nil
}

func parseDate(value, field string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequest(fmt.Sprintf("invalid %s, expected YYYY-MM-DD", field))
	}
	return parsed, nil
}

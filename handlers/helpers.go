package handlers

import (
	"errors"
	"sort"

	"examportal/api"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// backendDetail extracts the backend's error message for inline display.
// Unauthorized errors are never swallowed here; the caller must propagate
// them so the app-wide handler can tear the session down.
func backendDetail(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func sortCategoryCards(cards []categoryCard) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Name < cards[j].Name })
}

// flash pulls the one-shot messages carried across redirects.
func flash(c *fiber.Ctx, m fiber.Map) fiber.Map {
	if msg := c.Query("msg"); msg != "" {
		m["Msg"] = msg
	}
	if errMsg := c.Query("err"); errMsg != "" {
		m["Err"] = errMsg
	}
	return m
}

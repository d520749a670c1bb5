package api

import (
	"errors"
	"fmt"
)

// Ограничения на размер запрашиваемой карты
const (
	MaxDimension = 500
	MaxLevel     = 2
)

// MaxTokenLength - предел длины токена: он становится ID сессии в журнале зерен
const MaxTokenLength = 255

var ErrTokenTooLong = errors.New("token too long")

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p GeneratePayload) Validate() error {
	if p.Width < 0 || p.Height < 0 {
		return errors.New("map dimensions cannot be negative")
	}
	if p.Width > MaxDimension || p.Height > MaxDimension {
		return errors.New("map dimensions too large")
	}
	if p.Level < 0 || p.Level > MaxLevel {
		return errors.New("level out of range")
	}
	return nil
}

// ValidateToken проверяет только токен (рукопожатие идет без действия)
func (c ClientCommand) ValidateToken() error {
	if len(c.Token) > MaxTokenLength {
		return fmt.Errorf("%w: %d bytes, max %d", ErrTokenTooLong, len(c.Token), MaxTokenLength)
	}
	return nil
}

func (c ClientCommand) Validate() error {
	if err := c.ValidateToken(); err != nil {
		return err
	}
	switch c.Action {
	case ActionInit, ActionReset, ActionDescend:
		return nil
	case "":
		return errors.New("action is required")
	default:
		return errors.New("unknown action")
	}
}

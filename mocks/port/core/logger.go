package core

import (
	"github.com/stretchr/testify/mock"

	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
)

// Logger is a testify mock of core.Logger. Child loggers share the mock.
type Logger struct {
	mock.Mock
}

// NewLogger returns a Logger that accepts any call; assert on it afterwards
func NewLogger() *Logger {
	l := &Logger{}
	for _, name := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(name, mock.Anything, mock.Anything).Maybe()
	}
	l.On("With", mock.Anything).Maybe()
	l.On("SetLevel", mock.Anything).Maybe()
	l.On("GetLevel").Return(core.LogLevelInfo).Maybe()
	l.On("Flush").Return(nil).Maybe()
	return l
}

func (m *Logger) SetLevel(level core.LogLevel) { m.Called(level) }

func (m *Logger) GetLevel() core.LogLevel {
	return m.Called().Get(0).(core.LogLevel)
}

func (m *Logger) With(fields map[string]any) core.Logger {
	m.Called(fields)
	return m
}

func (m *Logger) Debug(message string, fields map[string]any) { m.Called(message, fields) }

func (m *Logger) Info(message string, fields map[string]any) { m.Called(message, fields) }

func (m *Logger) Warn(message string, fields map[string]any) { m.Called(message, fields) }

func (m *Logger) Error(message string, fields map[string]any) { m.Called(message, fields) }

func (m *Logger) Flush() error { return m.Called().Error(0) }

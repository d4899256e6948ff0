package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the global logger. Development mode gets human readable
// console output, everything else gets production JSON.
func Init(ginMode string) error {
	var (
		l   *zap.Logger
		err error
	)

	if ginMode == "release" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

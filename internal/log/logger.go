package log

import "go.uber.org/zap"

var sugar = zap.NewNop().Sugar()

// Init builds the process-wide logger. prod selects the JSON production
// encoder; otherwise the console development encoder is used.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	sugar = l.Sugar()
	return l, nil
}

func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }

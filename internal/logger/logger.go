// internal/logger/logger.go
//
// Structured JSON logger (Zap + Lumberjack).
//
// Context
// -------
// Vitrine writes one JSON log file per day under
// `<root>/logs/vitrine-YYYY-MM-DD.log`.  Lumberjack rotates, compresses,
// and prunes the files, so no external log-rotate job is needed.  During
// interactive development the same events are teed, colorized, to
// stdout.
//
// Usage
// -----
//
//	log, err := logger.New(cfg.Paths.Root, runningInTTY())
//	if err != nil { … }
//	log.Infow("business created", "slug", rec.Slug)
//
// Notes
// -----
// • ISO-8601 timestamps and lowercase level names.
// • The logger is installed as the process-wide default, so early code
//   can reach it through zap.S() before wiring finishes.
// • Oxford commas, two spaces after periods.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxSizeMB  = 100 // rotate above this size even within a day
	maxBackups = 14
	maxAgeDays = 30
)

// New returns a *zap.SugaredLogger writing to the daily file under
// rootDir/logs.  When tee == true a console core is attached as well.
func New(rootDir string, tee bool) (*zap.SugaredLogger, error) {
	logDir := filepath.Join(rootDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	name := "vitrine-" + time.Now().Format("2006-01-02") + ".log"
	rotor := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, name),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}

	enc := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotor), zap.InfoLevel),
	}
	if tee {
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(os.Stdout), zap.InfoLevel))
	}

	z := zap.New(
		zapcore.NewTee(cores...),
		zap.ErrorOutput(zapcore.AddSync(rotor)),
	).Sugar()

	// Process-wide default; zap.L()/zap.S() work everywhere after this.
	zap.ReplaceGlobals(z.Desugar())

	z.Infow("logger online", "file", rotor.Filename, "tee", tee)
	return z, nil
}

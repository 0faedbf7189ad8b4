package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const (
	maxLogSize  = 50 * 1024 * 1024
	maxLogFiles = 5
)

var (
	logrusplus *Logrusplus

	StdLogger     *logrus.Logger
	DefaultLogger *logrus.Logger
	CoreLogger    *logrus.Logger
	SaleLogger    *logrus.Logger
	VestingLogger *logrus.Logger
	StoreLogger   *logrus.Logger
)

func init() {
	logrusplus = New()
	StdLogger = logrus.StandardLogger()

	logsDir := "./logs/"

	_, err := os.Stat(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			err := os.Mkdir(logsDir, 0755)
			if err != nil {
				panic(err)
			}
		}
	}

	DefaultLogger = logrusplus.Logger(logsDir+"default", maxLogSize, maxLogFiles, logrus.InfoLevel)
	CoreLogger = logrusplus.Logger(logsDir+"core", maxLogSize, maxLogFiles, logrus.InfoLevel)
	SaleLogger = logrusplus.Logger(logsDir+"sale", maxLogSize, maxLogFiles, logrus.DebugLevel)
	VestingLogger = logrusplus.Logger(logsDir+"vesting", maxLogSize, maxLogFiles, logrus.DebugLevel)
	StoreLogger = logrusplus.Logger(logsDir+"store", maxLogSize, maxLogFiles, logrus.InfoLevel)
}

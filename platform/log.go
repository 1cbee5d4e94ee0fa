package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// dailyFileHook 按天切换日志文件
type dailyFileHook struct {
	writer   *os.File
	logPath  string
	fileName string
	fileDate string
}

func (h *dailyFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *dailyFileHook) Fire(entry *logrus.Entry) error {
	today := entry.Time.Format("2006-01-02")
	line, _ := entry.String()
	if h.fileDate != today {
		h.fileDate = today
		h.writer.Close()
		if err := os.MkdirAll(h.logPath, os.ModePerm); err != nil {
			logrus.Error(err)
			return err
		}
		filename := fmt.Sprintf("%s/%s-%s.log", h.logPath, h.fileDate, h.fileName)
		h.writer, _ = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	}
	_, err := h.writer.Write([]byte(line))
	return err
}

type plainFormatter struct{}

func (f *plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}
	b.WriteString(fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02 15:04:05.000"), entry.Level, entry.Message))
	return b.Bytes(), nil
}

// InitFile 给全局 logrus 挂上按天切换的文件 hook（访问日志用）
func InitFile(logPath string, fileName string) {
	logrus.SetFormatter(&plainFormatter{})
	today := time.Now().Format("2006-01-02")
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		logrus.Error(err)
		return
	}
	filename := fmt.Sprintf("%s/%s-%s.log", logPath, today, fileName)
	writer, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		logrus.Error(err)
		return
	}
	logrus.AddHook(&dailyFileHook{
		writer:   writer,
		logPath:  logPath,
		fileName: fileName,
		fileDate: today,
	})
}

// InitAppLogger 返回应用日志 logger，同时输出到文件和标准错误
func InitAppLogger(logPath string, fileName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&plainFormatter{})

	today := time.Now().Format("2006-01-02")
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		logrus.Error(err)
		return logger
	}
	filename := fmt.Sprintf("%s/%s-%s.log", logPath, today, fileName)
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		logrus.Error(err)
		return logger
	}
	logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
	return logger
}

var Logger = InitAppLogger("./log", "skilllink")

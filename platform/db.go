package platform

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config 包含数据库连接的配置信息
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ConfigFromEnv 从环境变量读取数据库配置
func ConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("SQL_HOST"),
		Port:     os.Getenv("SQL_PORT"),
		User:     os.Getenv("SQL_USER"),
		Password: os.Getenv("SQL_PASSWORD"),
		DBName:   os.Getenv("SQL_DBNAME"),
	}
}

// NewDB 初始化并返回一个 GORM DB 对象。连接在进程启动时创建一次，
// 之后注入到各个 repository 中使用。
func NewDB(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.User, config.Password, config.Host, config.Port, config.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

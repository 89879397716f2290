package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"wallbot-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB 인스턴스
var db *gorm.DB

// InitDatabase - 환경 변수로 MySQL 연결
func InitDatabase() error {
	host := os.Getenv("MYSQL_HOST")
	portStr := os.Getenv("MYSQL_PORT")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	dbname := os.Getenv("MYSQL_DATABASE")

	if host == "" || user == "" || password == "" || dbname == "" {
		return fmt.Errorf("MySQL 환경 변수가 모두 설정되지 않았습니다: MYSQL_HOST, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port == 0 {
		port = 3306 // 기본 포트
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	var errDB error
	db, errDB = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if errDB != nil {
		return fmt.Errorf("DB 연결 실패: %v", errDB)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	log.Println("✅ MySQL 연결 및 마이그레이션 완료")
	return nil
}

// Migrate - 테이블 자동 생성 (테스트에서는 SQLite 인스턴스에 직접 적용)
func Migrate(g *gorm.DB) error {
	err := g.AutoMigrate(
		&models.Trajectory{},
		&models.ExecutionSession{},
		&models.RobotAction{},
		&models.Message{},
		&models.SystemLog{},
	)
	if err != nil {
		return fmt.Errorf("마이그레이션 실패: %v", err)
	}
	return nil
}

// GetDB - GORM 인스턴스 반환
func GetDB() *gorm.DB {
	return db
}

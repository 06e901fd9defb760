package utils

import (
	"log"
	"sync"
	"time"
)

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation โหลด Timezone สำหรับ "Asia/Bangkok" — fallback เป็น UTC ถ้าโหลดไม่ได้
func AppLocation() *time.Location {
	locOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Bangkok")
		if err != nil {
			log.Printf("Error loading timezone 'Asia/Bangkok': %v. Using UTC instead.", err)
			loc = time.UTC
		}
		appLoc = loc
	})
	return appLoc
}

// StartOfDay เวลา 00:00:00.000 ของวันนั้นใน timezone ของระบบ
func StartOfDay(t time.Time) time.Time {
	t = t.In(AppLocation())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, AppLocation())
}

// EndOfDay เวลา 23:59:59.999 ของวันนั้นใน timezone ของระบบ
func EndOfDay(t time.Time) time.Time {
	t = t.In(AppLocation())
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), AppLocation())
}

// ParseDateParam แปลงวันที่รูปแบบ "2006-01-02" จาก query string
func ParseDateParam(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, AppLocation())
}

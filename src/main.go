package main

import (
	_ "Backend-PunchSync/docs"
	"Backend-PunchSync/src/controllers"
	"Backend-PunchSync/src/database"
	"Backend-PunchSync/src/jobs"
	"Backend-PunchSync/src/routes"
	"Backend-PunchSync/src/services/attendance"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {

	// เชื่อมต่อกับ MongoDB / Redis / Asynq
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()

	loc, err := time.LoadLocation(envOr("APP_TZ", "Asia/Bangkok"))
	if err != nil {
		loc = time.Local
	}

	window := time.Duration(envInt("COOLDOWN_WINDOW_MS", 120000)) * time.Millisecond
	retention := time.Duration(envInt("RETENTION_DAYS", 30)) * 24 * time.Hour

	// ประกอบ core แบบส่ง handle ต่อกันตรง ๆ ไม่มี singleton ใน service
	store := attendance.NewMongoStore(database.GetCollection("PunchSyncDB", "offline_attendance"))
	cache := attendance.NewRedisStatusCache(database.RedisClient, window)
	remote := attendance.NewHTTPRemoteAPI(os.Getenv("REMOTE_API_URI"))
	resolver := attendance.NewResolver(window)
	syncer := attendance.NewSyncer(store, cache, remote, resolver, loc, retention)
	punchSvc := attendance.NewPunchService(store, cache, loc)

	// งาน sync วิ่งเบื้องหลังผ่าน asynq ไม่บล็อกฝั่ง API
	jobs.StartWorker(database.RedisURI, syncer)
	if _, err := jobs.StartScheduler(database.RedisURI); err != nil {
		log.Println("⚠️ scheduler not started:", err)
	}

	// สร้าง app instance
	app := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	attController := controllers.NewAttendanceController(punchSvc, cache, store, loc)
	syncController := controllers.NewSyncController(syncer)
	routes.InitRoutes(app, attController, syncController)

	// get url from .env
	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888" // ใช้ 8888 เป็นค่าเริ่มต้น
	}

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + appURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI))); err != nil {
		log.Fatal(err)
	}

}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

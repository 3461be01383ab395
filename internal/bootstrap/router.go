package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/vv-pms/pms-backend/internal/api/http"
	"github.com/vv-pms/pms-backend/internal/api/http/middleware"
	"github.com/vv-pms/pms-backend/internal/timegrid"

	allochttp "github.com/vv-pms/pms-backend/internal/allocation/http"
	allocrepo "github.com/vv-pms/pms-backend/internal/allocation/repository"
	allocservice "github.com/vv-pms/pms-backend/internal/allocation/service"
	availhttp "github.com/vv-pms/pms-backend/internal/availability/http"
	availrepo "github.com/vv-pms/pms-backend/internal/availability/repository"
	availservice "github.com/vv-pms/pms-backend/internal/availability/service"
	presentationhttp "github.com/vv-pms/pms-backend/internal/presentation/http"
	presentationrepo "github.com/vv-pms/pms-backend/internal/presentation/repository"
	presentationservice "github.com/vv-pms/pms-backend/internal/presentation/service"
	professorhttp "github.com/vv-pms/pms-backend/internal/professors/http"
	professorrepo "github.com/vv-pms/pms-backend/internal/professors/repository"
	professorservice "github.com/vv-pms/pms-backend/internal/professors/service"
	projecthttp "github.com/vv-pms/pms-backend/internal/projects/http"
	projectrepo "github.com/vv-pms/pms-backend/internal/projects/repository"
	projectservice "github.com/vv-pms/pms-backend/internal/projects/service"
	roomhttp "github.com/vv-pms/pms-backend/internal/rooms/http"
	roomrepo "github.com/vv-pms/pms-backend/internal/rooms/repository"
	roomservice "github.com/vv-pms/pms-backend/internal/rooms/service"
	studenthttp "github.com/vv-pms/pms-backend/internal/students/http"
	studentrepo "github.com/vv-pms/pms-backend/internal/students/repository"
	studentservice "github.com/vv-pms/pms-backend/internal/students/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	HealthPool  *pgxpool.Pool
	Redis       *redis.Client
	Grid        timegrid.Config
	RateRPS     float64
	RateBurst   int
}

// Services groups the wired service layer so the cron runner can reuse the
// same instances the router serves.
type Services struct {
	Projects     *projectservice.ProjectService
	Professors   *professorservice.ProfessorService
	Students     *studentservice.StudentService
	Rooms        *roomservice.RoomService
	Availability *availservice.AvailabilityService
	Allocation   *allocservice.AllocationService
	Presentation *presentationservice.PresentationService
}

// BuildServices wires repositories and services in dependency order.
func BuildServices(dep RouterDeps) *Services {
	projectSvc := projectservice.NewProjectService(projectrepo.NewProjectRepository(dep.DB))
	professorSvc := professorservice.NewProfessorService(professorrepo.NewProfessorRepository(dep.DB))
	studentSvc := studentservice.NewStudentService(studentrepo.NewStudentRepository(dep.DB))
	roomSvc := roomservice.NewRoomService(roomrepo.NewRoomRepository(dep.DB), dep.Grid)
	availSvc := availservice.NewAvailabilityService(availrepo.NewAvailabilityRepository(dep.Redis), dep.Grid)

	allocationSvc := allocservice.NewAllocationService(
		allocrepo.NewAllocationRepository(dep.DB),
		projectSvc,
		professorSvc,
		studentSvc,
	)
	// Project creation assigns the owner through the allocation engine.
	projectSvc.SetOwnershipGateway(allocationSvc)

	presentationSvc := presentationservice.NewPresentationService(
		presentationrepo.NewSlotRepository(dep.DB),
		roomSvc,
		availSvc,
		allocationSvc,
		projectSvc,
		professorSvc,
		studentSvc,
		dep.Grid,
	)

	return &Services{
		Projects:     projectSvc,
		Professors:   professorSvc,
		Students:     studentSvc,
		Rooms:        roomSvc,
		Availability: availSvc,
		Allocation:   allocationSvc,
		Presentation: presentationSvc,
	}
}

// BuildRouter assembles the gin engine with middleware, health routes and
// the /api/v1 feature groups.
func BuildRouter(dep RouterDeps, svcs *Services) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RequestIDMiddleware())
	if dep.RateRPS > 0 {
		r.Use(middleware.RateLimitMiddleware(dep.RateRPS, dep.RateBurst))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.HealthPool)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projecthttp.New(svcs.Projects).Register(api.Group("/projects"))
	professorhttp.New(svcs.Professors).Register(api.Group("/professors"))
	studenthttp.New(svcs.Students).Register(api.Group("/students"))
	roomhttp.New(svcs.Rooms).Register(api.Group("/rooms"))
	availhttp.New(svcs.Availability).Register(api.Group("/availability"))
	allochttp.New(svcs.Allocation).Register(api.Group("/allocation"))
	presentationhttp.New(svcs.Presentation).Register(api.Group("/presentation"))

	return r
}

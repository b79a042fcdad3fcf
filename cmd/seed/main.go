package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"taskpad/internal/cache"
	"taskpad/internal/config"
	"taskpad/internal/db"
	"taskpad/internal/model"
	"taskpad/internal/repository"
	"taskpad/internal/service"
)

const defaultBoardFile = "board.json"

// SeedBoard represents one user's board in the seed file.
type SeedBoard struct {
	Email      string                 `json:"email"`
	Attributes map[string]interface{} `json:"attributes"`
	Tasks      []SeedTask             `json:"tasks"`
}

// SeedTask represents a task entry in the seed file.
type SeedTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Order       *int64  `json:"order"`
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Read the board fixture
	path := defaultBoardFile
	if v := os.Getenv("SEED_FILE"); v != "" {
		path = v
	}
	log.Printf("Reading board fixture: %s", path)
	boards, err := readBoards(path)
	if err != nil {
		log.Fatalf("Failed to read boards: %v", err)
	}
	log.Printf("Read %d boards from fixture", len(boards))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	userService := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)
	taskService := service.NewTaskService(repository.NewTaskRepository(gormDB), cacheClient)

	ctx := context.Background()
	users, existing, tasks, err := seedBoards(ctx, userService, taskService, boards)
	if err != nil {
		log.Fatalf("Failed to seed boards: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", users)
	log.Printf("  - Users already registered: %d", existing)
	log.Printf("  - Tasks created: %d", tasks)
}

// readBoards loads and parses the board fixture file.
func readBoards(path string) ([]SeedBoard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var boards []SeedBoard
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return boards, nil
}

// seedBoards replays the fixture through the registry and store, so seeding
// is idempotent for users and validated like any other request.
func seedBoards(
	ctx context.Context,
	users service.UserService,
	tasks service.TaskService,
	boards []SeedBoard,
) (created int, existing int, taskCount int, err error) {
	for _, board := range boards {
		result, err := users.Register(ctx, service.RegisterUserInput{
			Email:      board.Email,
			Attributes: board.Attributes,
		})
		if err != nil {
			return created, existing, taskCount, fmt.Errorf("register %s: %w", board.Email, err)
		}
		if result.AlreadyExists {
			existing++
		} else {
			created++
		}

		userID := result.User.ID.String()
		for _, item := range board.Tasks {
			if _, err := tasks.CreateTask(ctx, service.CreateTaskInput{
				Title:       item.Title,
				UserID:      userID,
				Description: item.Description,
				Category:    item.Category,
				Order:       item.Order,
			}); err != nil {
				return created, existing, taskCount, fmt.Errorf("create task %q for %s: %w", item.Title, board.Email, err)
			}
			taskCount++
		}
	}
	return created, existing, taskCount, nil
}

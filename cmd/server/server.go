package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/limaJavier/labscheduling/internal/registry"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type server struct {
	registry     registry.Registry
	scheduler    model.Scheduler
	baseWeekDate int
	logger       *zap.Logger
}

// ScheduleResponse is the week view: the projected schedule plus what the dashboard shows around it
type ScheduleResponse struct {
	WeekLabel     string              `json:"weekLabel"`
	WeekStartDate int                 `json:"weekStartDate"`
	Department    string              `json:"department"`
	Schedule      model.Schedule      `json:"schedule"`
	Unplaced      []model.Course      `json:"unplaced"`
	Summary       model.CourseSummary `json:"summary"`
}

// Options of a stateless generation; the courses travel beside them in the same document
type generateRequest struct {
	WeekStartDate *int   `mapstructure:"weekStartDate"`
	Department    string `mapstructure:"department"`
}

func newServer(courses registry.Registry, baseWeekDate int, logger *zap.Logger) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &server{
		registry:     courses,
		scheduler:    model.NewGreedyScheduler(courses.Shape(), logger),
		baseWeekDate: baseWeekDate,
		logger:       logger,
	}
}

func newApp(server *server) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          server.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${locals:requestid} ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/courses", server.listCourses)
	app.Post("/courses", server.addCourse)
	app.Delete("/courses/:id", server.removeCourse)
	app.Get("/schedule", server.getSchedule)
	app.Post("/schedule/generate", server.generateSchedule)

	return app
}

func (server *server) listCourses(c *fiber.Ctx) error {
	department := server.department(c.Query("department"))
	courses := server.registry.List(department)
	return jsonOK(c, fiber.Map{
		"courses": courses,
		"summary": model.SummarizeCourses(courses, model.AllDepartments),
	})
}

func (server *server) addCourse(c *fiber.Ctx) error {
	var document map[string]any
	if err := json.Unmarshal(c.Body(), &document); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid course document: "+err.Error())
	}
	raws, err := model.DecodeRawCourses([]any{document})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	course, err := server.registry.Add(raws[0])
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "created",
		"data":    course,
	})
}

func (server *server) removeCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := server.registry.Remove(id); err != nil {
		if errors.Is(err, registry.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return jsonOK(c, fiber.Map{"id": id})
}

func (server *server) getSchedule(c *fiber.Ctx) error {
	weekOffset := 0
	if value := c.Query("weekOffset"); value != "" {
		var err error
		if weekOffset, err = strconv.Atoi(value); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "weekOffset must be an integer")
		}
	}

	weekStartDate := model.WeekStartDate(server.baseWeekDate, weekOffset)
	return jsonOK(c, server.buildResponse(server.registry.List(""), weekStartDate, server.department(c.Query("department"))))
}

// Generates a schedule for the posted courses without touching the registry
func (server *server) generateSchedule(c *fiber.Ctx) error {
	raws, err := model.RawCoursesFromReader(bytes.NewReader(c.Body()))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	request, err := decodeGenerateRequest(c.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	shape := server.registry.Shape()
	courses := make([]model.Course, 0, len(raws))
	for i, raw := range raws {
		if err := model.ValidateCourse(raw, shape); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "course #"+strconv.Itoa(i)+": "+err.Error())
		}
		course := model.NormalizeCourse(raw)
		course.Department = model.NormalizeDepartment(course.Department, shape.Departments)
		courses = append(courses, course)
	}

	weekStartDate := server.baseWeekDate
	if request.WeekStartDate != nil {
		weekStartDate = *request.WeekStartDate
	}
	return jsonOK(c, server.buildResponse(courses, weekStartDate, server.department(request.Department)))
}

// Numbers given as strings are accepted, as they are for courses. A bare course array carries no options
func decodeGenerateRequest(body []byte) (generateRequest, error) {
	var request generateRequest
	var document any
	if err := json.Unmarshal(body, &document); err != nil {
		return request, fmt.Errorf("invalid request document: %w", err)
	}
	if _, ok := document.(map[string]any); !ok {
		return request, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &request,
	})
	if err != nil {
		return request, err
	}
	if err := decoder.Decode(document); err != nil {
		return request, fmt.Errorf("invalid request options: %w", err)
	}
	return request, nil
}

func (server *server) buildResponse(courses []model.Course, weekStartDate int, department string) ScheduleResponse {
	schedule, unplaced := server.scheduler.Build(courses, weekStartDate)
	return ScheduleResponse{
		WeekLabel:     model.WeekRangeLabel(model.DefaultBaseWeekMonth, model.DefaultBaseWeekYear, weekStartDate, len(schedule)),
		WeekStartDate: weekStartDate,
		Department:    department,
		Schedule:      model.FilterScheduleByDepartment(schedule, department),
		Unplaced:      model.FilterCoursesByDepartment(unplaced, department),
		Summary:       model.SummarizeCourses(courses, department),
	}
}

// Resolves the department query, where "" means every department
func (server *server) department(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, model.AllDepartments) {
		return model.AllDepartments
	}
	return model.NormalizeDepartment(value, server.registry.Shape().Departments)
}

func (server *server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		server.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

func jsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "ok",
		"data":    data,
	})
}

func isCsv(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

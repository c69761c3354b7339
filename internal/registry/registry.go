package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/limaJavier/labscheduling/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var ErrCourseNotFound = errors.New("course not found")

// Registry keeps the in-memory course roster the dashboard works with
type Registry interface {
	List(department string) []model.Course
	Add(raw model.RawCourse) (model.Course, error)
	Remove(id string) error
	Shape() model.WeekShape
}

type registryImplementation struct {
	mutex   sync.RWMutex
	shape   model.WeekShape
	courses []model.Course
	logger  *zap.Logger
}

func New(shape model.WeekShape, logger *zap.Logger) Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &registryImplementation{
		shape:   shape,
		courses: make([]model.Course, 0),
		logger:  logger,
	}
}

// Seed validates and stores the given courses, failing on the first invalid one
func Seed(registry Registry, raws []model.RawCourse) error {
	for i, raw := range raws {
		if _, err := registry.Add(raw); err != nil {
			return fmt.Errorf("course #%d: %w", i, err)
		}
	}
	return nil
}

// List returns a copy of the courses belonging to department ("" or "all" for every course), in insertion order
func (registry *registryImplementation) List(department string) []model.Course {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	department = model.NormalizeDepartment(department, registry.shape.Departments)
	return slices.Clone(model.FilterCoursesByDepartment(registry.courses, department))
}

func (registry *registryImplementation) Add(raw model.RawCourse) (model.Course, error) {
	if err := model.ValidateCourse(raw, registry.shape); err != nil {
		return model.Course{}, err
	}

	course := model.NormalizeCourse(raw)
	course.Department = model.NormalizeDepartment(course.Department, registry.shape.Departments)

	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	if strings.TrimSpace(course.Id) == "" {
		course.Id = uuid.NewString()
	} else if lo.ContainsBy(registry.courses, func(existing model.Course) bool { return existing.Id == course.Id }) {
		return model.Course{}, fmt.Errorf("course id %q is already registered", course.Id)
	}
	registry.courses = append(registry.courses, course)

	registry.logger.Info("course added",
		zap.String("id", course.Id),
		zap.String("course", course.CourseCode),
		zap.String("department", course.Department),
	)
	return course, nil
}

func (registry *registryImplementation) Remove(id string) error {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	index := slices.IndexFunc(registry.courses, func(course model.Course) bool { return course.Id == id })
	if index == -1 {
		return fmt.Errorf("%w: %v", ErrCourseNotFound, id)
	}
	registry.courses = slices.Delete(registry.courses, index, index+1)

	registry.logger.Info("course removed", zap.String("id", id))
	return nil
}

func (registry *registryImplementation) Shape() model.WeekShape {
	return registry.shape
}

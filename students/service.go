// Package students, as part of the student records module.
// This file, `service.go`, contains the CRUD logic. Every operation loads the
// whole collection, works on it in memory and, when it changes something,
// saves the whole collection back.
package students

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/studentsvc/apperror"
	"github.com/user/studentsvc/auth"
	"github.com/user/studentsvc/logging"
	"github.com/user/studentsvc/store"
)

// Service implements list/get/create/update/delete over a store.Store.
//
// By default mutations are not coordinated: two concurrent mutations each load,
// change and save, and the later save wins. With serialized writes enabled the
// whole load-mutate-save of a mutation runs under one mutex instead.
type Service struct {
	store  store.Store
	logger logging.Logger
	// writeMu is nil unless writes are serialized.
	writeMu *sync.Mutex
}

// NewService creates a Service. serializeWrites enables the process-wide mutation lock.
func NewService(st store.Store, logger logging.Logger, serializeWrites bool) *Service {
	if logger == nil {
		logger = logging.Nop{}
	}
	s := &Service{store: st, logger: logger}
	if serializeWrites {
		s.writeMu = &sync.Mutex{}
	}
	return s
}

func (s *Service) lockWrites() func() {
	if s.writeMu == nil {
		return func() {}
	}
	s.writeMu.Lock()
	return s.writeMu.Unlock
}

// indexOf is a linear scan for the first record with id; -1 if none.
func indexOf(students store.Collection, id int64) int {
	for i, st := range students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return apperror.NewNotFoundError(fmt.Sprintf("student with id %d not found", id), nil)
}

// List returns every record in stored order. Every authenticated user sees
// every record; user is accepted so callers thread the identity through.
func (s *Service) List(ctx context.Context, user auth.UserContext) store.Collection {
	return s.store.Load(ctx)
}

// Get returns the first record with id.
func (s *Service) Get(ctx context.Context, user auth.UserContext, id int64) (store.Student, error) {
	students := s.store.Load(ctx)
	i := indexOf(students, id)
	if i < 0 {
		return store.Student{}, notFound(id)
	}
	return students[i], nil
}

// Create appends the payload's record. Duplicate ids are accepted.
// An id that isn't an integer fails before the store is read.
func (s *Service) Create(ctx context.Context, user auth.UserContext, payload StudentPayload) (store.Student, error) {
	student, err := payload.Student()
	if err != nil {
		return store.Student{}, err
	}

	defer s.lockWrites()()

	students := s.store.Load(ctx)
	students = append(students, student)
	if err := s.store.Save(ctx, students); err != nil {
		return store.Student{}, err
	}

	s.logger.Info(ctx, "student created", "user_id", user.UserID, "student_id", student.ID, "count", len(students))
	return student, nil
}

// Update replaces the first record whose id matches the payload's, keeping its position.
func (s *Service) Update(ctx context.Context, user auth.UserContext, payload StudentPayload) (store.Student, error) {
	student, err := payload.Student()
	if err != nil {
		return store.Student{}, err
	}

	defer s.lockWrites()()

	students := s.store.Load(ctx)
	i := indexOf(students, student.ID)
	if i < 0 {
		return store.Student{}, notFound(student.ID)
	}
	students[i] = student
	if err := s.store.Save(ctx, students); err != nil {
		return store.Student{}, err
	}

	s.logger.Info(ctx, "student updated", "user_id", user.UserID, "student_id", student.ID)
	return student, nil
}

// Delete removes the first record with id.
func (s *Service) Delete(ctx context.Context, user auth.UserContext, id int64) (DeleteResponse, error) {
	defer s.lockWrites()()

	students := s.store.Load(ctx)
	i := indexOf(students, id)
	if i < 0 {
		return DeleteResponse{}, notFound(id)
	}
	students = append(students[:i], students[i+1:]...)
	if err := s.store.Save(ctx, students); err != nil {
		return DeleteResponse{}, err
	}

	s.logger.Info(ctx, "student deleted", "user_id", user.UserID, "student_id", id, "count", len(students))
	return DeleteResponse{Message: "student deleted", ID: id}, nil
}

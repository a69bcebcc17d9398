// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one store interface with a function field per
// method. Tests set only the fields they need; unset fields fall back
// to inert defaults (empty results, nil errors) so a test never has to
// stub methods it doesn't exercise.
//
//	store := &mocks.TaskStore{
//	    GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return task, nil
//	    },
//	}
package mocks

// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"sync"

	"github.com/trezcool/zoezi/core/correction"
	"github.com/trezcool/zoezi/core/student"
	"github.com/trezcool/zoezi/core/unit"
)

type (
	stateKey struct{ studentID, unitID, exercise int }
	flagsKey struct{ unitID, exercise int }
	corrKey  struct {
		unitID, exercise int
		digest           string
	}

	DB struct {
		mu          sync.RWMutex
		students    map[int]student.Student
		units       map[int]unit.Unit
		states      map[stateKey]int
		flags       map[flagsKey]unit.ExerciseFlags
		corrections map[corrKey]correction.Correction
		corrOrder   []corrKey // insertion order, mimics ORDER BY created_at
	}
)

func Open() *DB {
	return &DB{
		students:    make(map[int]student.Student),
		units:       make(map[int]unit.Unit),
		states:      make(map[stateKey]int),
		flags:       make(map[flagsKey]unit.ExerciseFlags),
		corrections: make(map[corrKey]correction.Correction),
	}
}

// AddStudent seeds a student row.
func (db *DB) AddStudent(s student.Student) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.students[s.ID] = s
}

// AddUnit seeds a unit row.
func (db *DB) AddUnit(u unit.Unit) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.units[u.ID] = u
}

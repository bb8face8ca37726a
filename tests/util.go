// Package testutil holds helpers shared by the package test suites.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tnthao/solienlac/core/classroom"
)

// NopLogger satisfies core.Logger and swallows everything.
type NopLogger struct{}

func (NopLogger) Enable(bool)                        {}
func (NopLogger) Debug(string, ...interface{})       {}
func (NopLogger) Info(string, ...interface{})        {}
func (NopLogger) Warn(string, ...interface{})        {}
func (NopLogger) Error(string, ...interface{})       {}
func (NopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

// Diff fails the test with a unified diff when got differs from want.
// Both values are rendered as indented JSON first.
func Diff(t *testing.T, want, got interface{}) {
	t.Helper()
	w, err := json.MarshalIndent(want, "", "  ")
	if err != nil {
		t.Fatalf("marshaling want: %v", err)
	}
	g, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("marshaling got: %v", err)
	}
	if string(w) == string(g) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(w)),
		B:        difflib.SplitLines(string(g)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("unexpected result:\n%s", diff)
}

// CreateStudent persists a student through the provider, failing the test
// on error.
func CreateStudent(t *testing.T, provider classroom.DataProvider, code, name, classID string) classroom.Student {
	t.Helper()
	st, err := provider.AddStudent(context.Background(), classroom.Student{
		Code:     code,
		FullName: name,
		ClassID:  classID,
		Status:   classroom.StudentActive,
	})
	if err != nil {
		t.Fatalf("CreateStudent(%s) failed: %v", code, err)
	}
	return st
}

// CreateClass persists a class through the provider, failing the test on
// error.
func CreateClass(t *testing.T, provider classroom.DataProvider, name string) classroom.ClassInfo {
	t.Helper()
	info, err := provider.AddClass(context.Background(), classroom.ClassInfo{
		ClassName:  name,
		SchoolYear: "2023-2024",
	})
	if err != nil {
		t.Fatalf("CreateClass(%s) failed: %v", name, err)
	}
	return info
}

// CreateUser registers an account whose password is hashed first.
func CreateUser(t *testing.T, provider classroom.DataProvider, username, pwd, role, relatedID string) classroom.User {
	t.Helper()
	usr := classroom.User{
		Username:  username,
		FullName:  username,
		Role:      role,
		RelatedID: relatedID,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", username, err)
		}
	}
	created, err := provider.Register(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return created
}

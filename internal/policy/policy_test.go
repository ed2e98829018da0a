package policy

import (
	"errors"
	"testing"

	"github.com/feedback-api/internal/domain"
)

func ref(id int64) *int64 {
	return &id
}

var (
	managerA  = &domain.User{ID: 1, Role: domain.RoleManager}
	managerB  = &domain.User{ID: 2, Role: domain.RoleManager}
	employeeA = &domain.User{ID: 3, Role: domain.RoleEmployee, ManagerID: ref(1)}
	employeeB = &domain.User{ID: 4, Role: domain.RoleEmployee, ManagerID: ref(2)}
	orphan    = &domain.User{ID: 5, Role: domain.RoleEmployee}
	// руководитель, ошибочно подчинённый другому руководителю
	subManager = &domain.User{ID: 6, Role: domain.RoleManager, ManagerID: ref(1)}

	feedbackA = &domain.Feedback{ID: 10, EmployeeID: 3, ManagerID: 1}
)

func assertDecision(t *testing.T, err error, allow bool) {
	t.Helper()
	if allow {
		if err != nil {
			t.Fatalf("expected allow, got %v", err)
		}
		return
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if domain.KindOf(err) != domain.KindForbidden {
		t.Fatalf("expected forbidden kind, got %v", domain.KindOf(err))
	}
}

func TestCanCreateFeedback(t *testing.T) {
	tests := []struct {
		name     string
		caller   *domain.User
		employee *domain.User
		allow    bool
	}{
		{"own report", managerA, employeeA, true},
		{"other manager's report", managerA, employeeB, false},
		{"employee without manager", managerA, orphan, false},
		{"employee as author", employeeA, employeeA, false},
		{"manager as target", managerA, subManager, false},
		{"self", managerA, managerA, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, CanCreateFeedback(tt.caller, tt.employee), tt.allow)
		})
	}
}

func TestCanReadFeedback(t *testing.T) {
	tests := []struct {
		name   string
		caller *domain.User
		allow  bool
	}{
		{"author", managerA, true},
		{"recipient", employeeA, true},
		{"other manager", managerB, false},
		{"other employee", employeeB, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, CanReadFeedback(tt.caller, feedbackA), tt.allow)
		})
	}
}

func TestCanUpdateFeedback(t *testing.T) {
	assertDecision(t, CanUpdateFeedback(managerA, feedbackA), true)
	assertDecision(t, CanUpdateFeedback(managerB, feedbackA), false)
	assertDecision(t, CanUpdateFeedback(employeeA, feedbackA), false)
}

func TestCanRespondToFeedback(t *testing.T) {
	assertDecision(t, CanRespondToFeedback(employeeA, feedbackA), true)
	assertDecision(t, CanRespondToFeedback(employeeB, feedbackA), false)
	assertDecision(t, CanRespondToFeedback(managerA, feedbackA), false)
}

func TestCanListEmployeeFeedback(t *testing.T) {
	assertDecision(t, CanListEmployeeFeedback(managerA, employeeA), true)
	assertDecision(t, CanListEmployeeFeedback(managerB, employeeA), false)
	assertDecision(t, CanListEmployeeFeedback(employeeA, employeeA), false)
}

func TestCanReadUser(t *testing.T) {
	tests := []struct {
		name   string
		caller *domain.User
		target *domain.User
		allow  bool
	}{
		{"manager self", managerA, managerA, true},
		{"manager own report", managerA, employeeA, true},
		{"manager other report", managerA, employeeB, false},
		{"manager other manager", managerA, managerB, false},
		{"employee self", employeeA, employeeA, true},
		{"employee own manager", employeeA, managerA, false},
		{"employee peer", employeeA, employeeB, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecision(t, CanReadUser(tt.caller, tt.target), tt.allow)
		})
	}
}

func TestRoleGates(t *testing.T) {
	assertDecision(t, CanListTeam(managerA), true)
	assertDecision(t, CanListTeam(employeeA), false)
	assertDecision(t, RequireEmployee(employeeA), true)
	assertDecision(t, RequireEmployee(managerA), false)
	assertDecision(t, RequireManager(nil), false)
}

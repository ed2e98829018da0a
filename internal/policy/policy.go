// Package policy содержит решения о доступе. Функции чистые: они не обращаются
// к хранилищу и возвращают nil (разрешено) или ошибку класса domain.ErrForbidden.
package policy

import (
	"github.com/feedback-api/internal/domain"
)

var (
	errManagersOnly   = domain.Forbidden("only managers can perform this action")
	errEmployeesOnly  = domain.Forbidden("only employees can perform this action")
	errNotYourReport  = domain.Forbidden("you can only create feedback for your team members")
	errNotYourTeam    = domain.Forbidden("you can only view feedback for your team members")
	errNotVisible     = domain.Forbidden("not authorized to view this feedback")
	errNotAuthor      = domain.Forbidden("you can only edit your own feedback")
	errNotRecipient   = domain.Forbidden("you can only respond to feedback addressed to you")
	errProfileHidden  = domain.Forbidden("you can only view your team members or yourself")
	errOwnProfileOnly = domain.Forbidden("you can only view your own profile")
)

// RequireManager пропускает только руководителей
func RequireManager(caller *domain.User) error {
	if !caller.IsManager() {
		return errManagersOnly
	}
	return nil
}

// RequireEmployee пропускает только сотрудников
func RequireEmployee(caller *domain.User) error {
	if !caller.IsEmployee() {
		return errEmployeesOnly
	}
	return nil
}

// CanCreateFeedback: автор - руководитель, адресат - его прямой подчинённый с ролью employee
func CanCreateFeedback(caller, employee *domain.User) error {
	if err := RequireManager(caller); err != nil {
		return err
	}
	if !employee.IsEmployee() || !employee.ReportsTo(caller.ID) {
		return errNotYourReport
	}
	return nil
}

// CanReadFeedback: руководитель видит написанные им отзывы, сотрудник - полученные
func CanReadFeedback(caller *domain.User, feedback *domain.Feedback) error {
	switch {
	case caller.IsManager() && feedback.ManagerID == caller.ID:
		return nil
	case caller.IsEmployee() && feedback.EmployeeID == caller.ID:
		return nil
	default:
		return errNotVisible
	}
}

// CanListEmployeeFeedback: только руководитель этого сотрудника
func CanListEmployeeFeedback(caller, employee *domain.User) error {
	if err := RequireManager(caller); err != nil {
		return err
	}
	if !employee.ReportsTo(caller.ID) {
		return errNotYourTeam
	}
	return nil
}

// CanUpdateFeedback: контент меняет только автор-руководитель
func CanUpdateFeedback(caller *domain.User, feedback *domain.Feedback) error {
	if err := RequireManager(caller); err != nil {
		return err
	}
	if feedback.ManagerID != caller.ID {
		return errNotAuthor
	}
	return nil
}

// CanRespondToFeedback: подтверждение и комментарий доступны только адресату
func CanRespondToFeedback(caller *domain.User, feedback *domain.Feedback) error {
	if err := RequireEmployee(caller); err != nil {
		return err
	}
	if feedback.EmployeeID != caller.ID {
		return errNotRecipient
	}
	return nil
}

// CanReadUser: руководитель видит себя и прямых подчинённых, сотрудник - только себя
func CanReadUser(caller, target *domain.User) error {
	switch {
	case caller.IsManager():
		if target.ID == caller.ID || target.ReportsTo(caller.ID) {
			return nil
		}
		return errProfileHidden
	case caller.IsEmployee():
		if target.ID == caller.ID {
			return nil
		}
		return errOwnProfileOnly
	default:
		return errProfileHidden
	}
}

// CanListTeam: список команды доступен только руководителю
func CanListTeam(caller *domain.User) error {
	return RequireManager(caller)
}

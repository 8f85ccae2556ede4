package fakebackend

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/users"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginHandler answers with the token and role only; clients read the
// username out of the token.
func (b *Backend) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		b.mu.RLock()
		acc, ok := b.accounts[req.Username]
		b.mu.RUnlock()
		if !ok || !users.CheckPasswordHash(req.Password, acc.passwordHash) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}

		raw, err := b.issue(acc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"token": raw,
			"role":  string(acc.role),
		})
	}
}

func (b *Backend) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg users.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := users.ValidateRegistration(reg); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		role := reg.Role
		if role == "" {
			role = users.RoleEmployee
		}

		b.mu.RLock()
		_, exists := b.accounts[reg.Username]
		b.mu.RUnlock()
		if exists {
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}

		if _, err := b.AddUser(reg.Username, reg.Password, reg.Email, role); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeText(w, http.StatusOK, "User registered successfully")
	}
}

func (b *Backend) profileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := callerUsername(r)

		b.mu.RLock()
		defer b.mu.RUnlock()
		acc, ok := b.accounts[username]
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		emp := b.employees[acc.employeeID]
		writeJSON(w, http.StatusOK, map[string]string{
			"username":  acc.username,
			"email":     acc.email,
			"role":      string(acc.role),
			"firstName": emp.FirstName,
			"lastName":  emp.LastName,
		})
	}
}

// canAccess reports whether the caller may read or change the record owned
// by username.
func canAccess(r *http.Request, username string) bool {
	return callerRole(r).IsManager() || callerUsername(r) == username
}

func (b *Backend) employeeByUsernameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")

		b.mu.RLock()
		defer b.mu.RUnlock()
		acc, ok := b.accounts[username]
		if !ok {
			writeError(w, http.StatusNotFound, "Employee not found")
			return
		}
		if !canAccess(r, username) {
			writeError(w, http.StatusForbidden, "Not allowed to view this employee")
			return
		}
		writeJSON(w, http.StatusOK, b.employees[acc.employeeID])
	}
}

func (b *Backend) employeeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid employee id")
			return
		}

		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := employees.ValidateUpdate(fields); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var hash string
		if pw, ok := fields[employees.FieldPassword]; ok {
			if hash, err = users.HashPassword(pw); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to hash password")
				return
			}
		}

		status, err := b.applyUpdate(r, id, fields, hash)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
		emp, _ := b.Employee(id)
		writeJSON(w, http.StatusOK, emp)
	}
}

func (b *Backend) applyUpdate(r *http.Request, id int64, fields map[string]string, hash string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	emp, ok := b.employees[id]
	if !ok {
		return http.StatusNotFound, errors.New("employee not found")
	}
	if !canAccess(r, emp.Username) {
		return http.StatusForbidden, errors.New("not allowed to update this employee")
	}
	acc := b.accounts[emp.Username]

	if newName, ok := fields[employees.FieldUsername]; ok && newName != emp.Username {
		if _, taken := b.accounts[newName]; taken {
			return http.StatusConflict, errors.New("username already taken")
		}
		delete(b.accounts, emp.Username)
		acc.username = newName
		b.accounts[newName] = acc
		emp.Username = newName
	}
	for name, value := range fields {
		switch name {
		case employees.FieldFirstName:
			emp.FirstName = value
		case employees.FieldLastName:
			emp.LastName = value
		case employees.FieldPhoneNumber:
			emp.PhoneNumber = value
		case employees.FieldEmail:
			emp.Email = value
			acc.email = value
		}
	}
	if hash != "" {
		acc.passwordHash = hash
	}
	return http.StatusOK, nil
}

func (b *Backend) employeeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.RLock()
		list := make([]employees.Employee, 0, len(b.employees))
		for _, emp := range b.employees {
			list = append(list, *emp)
		}
		b.mu.RUnlock()

		sort.Slice(list, func(i, j int) bool { return list[i].EmployeeID < list[j].EmployeeID })
		writeJSON(w, http.StatusOK, list)
	}
}

func (b *Backend) shiftSwapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		employeeID, err1 := strconv.ParseInt(query.Get("employeeId"), 10, 64)
		shiftID, err2 := strconv.ParseInt(query.Get("shiftId"), 10, 64)
		if err1 != nil || err2 != nil || employeeID <= 0 || shiftID <= 0 {
			writeError(w, http.StatusBadRequest, "employeeId and shiftId are required")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		emp, ok := b.employees[employeeID]
		if !ok {
			writeError(w, http.StatusNotFound, "Employee not found")
			return
		}
		if !canAccess(r, emp.Username) {
			writeError(w, http.StatusForbidden, "Not allowed to swap this employee's shift")
			return
		}
		b.swaps = append(b.swaps, SwapRequest{EmployeeID: employeeID, ShiftID: shiftID})
		writeText(w, http.StatusOK, "Shift swap request submitted successfully")
	}
}

package fakebackend

import "net/http"

const (
	RouteLogin          = AuthPrefix + "/login"
	RouteRegister       = AuthPrefix + "/register"
	RouteProfile        = AuthPrefix + "/profile"
	RouteEmployeeByName = APIPrefix + "/employee/employee-username/{username}"
	RouteEmployeeUpdate = APIPrefix + "/employee/update/employee-record/{id}"
	RouteEmployeeList   = APIPrefix + "/employee/all"
	RouteShiftSwap      = APIPrefix + "/shift/request-swap"
)

func (b *Backend) routes() *http.ServeMux {
	mux := http.NewServeMux()
	public := []middleware{b.loggingMiddleware, b.failureMiddleware}
	authed := []middleware{b.loggingMiddleware, b.failureMiddleware, b.requireAuth}
	manager := []middleware{b.loggingMiddleware, b.failureMiddleware, b.requireAuth, b.requireManager}

	mux.HandleFunc("POST "+RouteLogin, chainMiddleware(b.loginHandler(), public...))
	mux.HandleFunc("POST "+RouteRegister, chainMiddleware(b.registerHandler(), public...))
	mux.HandleFunc("GET "+RouteProfile, chainMiddleware(b.profileHandler(), authed...))

	mux.HandleFunc("GET "+RouteEmployeeByName, chainMiddleware(b.employeeByUsernameHandler(), authed...))
	mux.HandleFunc("PATCH "+RouteEmployeeUpdate, chainMiddleware(b.employeeUpdateHandler(), authed...))
	mux.HandleFunc("GET "+RouteEmployeeList, chainMiddleware(b.employeeListHandler(), manager...))
	mux.HandleFunc("POST "+RouteShiftSwap, chainMiddleware(b.shiftSwapHandler(), authed...))
	return mux
}

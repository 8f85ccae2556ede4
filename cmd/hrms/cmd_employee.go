package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-hrms-client/auth"
	"github.com/jrsteele09/go-hrms-client/employees"
	"github.com/jrsteele09/go-hrms-client/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newEmployeeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "View and edit employee records",
	}
	cmd.AddCommand(newEmployeeShowCmd(opts), newEmployeeUpdateCmd(opts))
	return cmd
}

func newEmployeeShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [username]",
		Short: "Show an employee record (default: your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				emp *employees.Employee
				err error
			)
			if len(args) == 1 {
				emp, err = opts.app.employees.GetByUsername(cmd.Context(), args[0])
			} else {
				emp, err = opts.app.employees.Current(cmd.Context())
			}
			if err != nil {
				return err
			}
			return opts.render(emp, func(w io.Writer) { printEmployee(w, emp) })
		},
	}
}

func newEmployeeUpdateCmd(opts *rootOptions) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update [id] --set field=value...",
		Short: "Update fields of an employee record (default: your own)",
		Long: fmt.Sprintf(`Update up to %d fields of an employee record in one request.
Fields: firstName, lastName, username, password, phoneNumber, email.`, employees.MaxUpdateFields),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			id, err := employeeIDArg(cmd.Context(), opts, args)
			if err != nil {
				return err
			}
			if err := opts.app.employees.UpdateRecord(cmd.Context(), id, fields); err != nil {
				return err
			}
			fmt.Fprintf(opts.errOut, "Updated employee %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value to change (repeatable)")
	return cmd
}

func parseAssignments(sets []string) (map[string]string, error) {
	fields := make(map[string]string, len(sets))
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want field=value", s)
		}
		fields[key] = value
	}
	return fields, nil
}

// employeeIDArg returns the id given on the command line, or the current
// user's employee id.
func employeeIDArg(ctx context.Context, opts *rootOptions, args []string) (int64, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid employee id %q", args[0])
		}
		return id, nil
	}
	emp, err := opts.app.employees.Current(ctx)
	if err != nil {
		return 0, err
	}
	return emp.EmployeeID, nil
}

func printEmployee(w io.Writer, e *employees.Employee) {
	field(w, "Employee ID", e.EmployeeID)
	if e.ManagerID != nil {
		field(w, "Manager ID", utils.Value(e.ManagerID))
	}
	field(w, "Username", e.Username)
	field(w, "Name", strings.TrimSpace(e.FirstName+" "+e.LastName))
	field(w, "Role", roleLabel(e.Role))
	field(w, "Email", e.Email)
	field(w, "Phone", e.PhoneNumber)
	field(w, "Department", e.Department)
	if e.ShiftID != nil {
		field(w, "Shift ID", utils.Value(e.ShiftID))
	}
	field(w, "Joined", e.JoinedDate)
}

func newShiftCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Shift requests",
	}
	cmd.AddCommand(newShiftSwapCmd(opts))
	return cmd
}

func newShiftSwapCmd(opts *rootOptions) *cobra.Command {
	var shiftID, employeeID int64
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Request a shift swap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if employeeID == 0 {
				emp, err := opts.app.employees.Current(cmd.Context())
				if err != nil {
					return err
				}
				employeeID = emp.EmployeeID
			}
			if err := opts.app.shifts.RequestSwap(cmd.Context(), employeeID, shiftID); err != nil {
				return err
			}
			fmt.Fprintln(opts.errOut, "Shift swap request submitted successfully!")
			return nil
		},
	}
	cmd.Flags().Int64Var(&shiftID, "shift-id", 0, "Shift to swap to")
	cmd.Flags().Int64Var(&employeeID, "employee-id", 0, "Employee requesting the swap (default: you)")
	_ = cmd.MarkFlagRequired("shift-id")
	return cmd
}

type dashboardView struct {
	Home     string              `json:"home" yaml:"home"`
	Profile  *auth.Profile       `json:"profile" yaml:"profile"`
	Employee *employees.Employee `json:"employee" yaml:"employee"`
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your profile and employee record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := dashboardView{Home: opts.app.auth.HomePath()}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				p, err := opts.app.auth.Profile(ctx)
				if err == nil {
					view.Profile = p
				}
				return err
			})
			g.Go(func() error {
				emp, err := opts.app.employees.Current(ctx)
				if err == nil {
					view.Employee = emp
				}
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return opts.render(view, func(w io.Writer) {
				fmt.Fprintf(w, "Welcome, %s (%s)\n\n", view.Employee.FullName(), view.Home)
				printProfile(w, view.Profile)
				fmt.Fprintln(w)
				printEmployee(w, view.Employee)
			})
		},
	}
}

package main

import (
	"fmt"
	"net/http"

	"github.com/gestionsoft/erp-backend-go/internal/config"
	appHTTP "github.com/gestionsoft/erp-backend-go/internal/handler/http"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/database"
	"github.com/gestionsoft/erp-backend-go/internal/pkg/jwt"
	"github.com/gestionsoft/erp-backend-go/internal/repository/postgresql"
	employeeService "github.com/gestionsoft/erp-backend-go/internal/service/employee"
	payrollService "github.com/gestionsoft/erp-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, employeeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

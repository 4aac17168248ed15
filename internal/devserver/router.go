package devserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"docemarce/internal/utils"
)

// NewRouter wires the nine endpoint paths to their handlers. Every endpoint
// is a fixed-URL JSON POST, except getproducts which also accepts the bare
// GET the admin catalog screen issues.
func NewRouter(s *Server, logger *utils.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/getuser", s.GetUserHandler).Methods("POST")
	r.HandleFunc("/createuser", s.CreateUserHandler).Methods("POST")
	r.HandleFunc("/updateuser", s.UpdateUserHandler).Methods("POST")
	r.HandleFunc("/getorder", s.GetOrderHandler).Methods("POST")
	r.HandleFunc("/createorder", s.CreateOrderHandler).Methods("POST")
	r.HandleFunc("/updateorder", s.UpdateOrderHandler).Methods("POST")
	r.HandleFunc("/getproducts", s.GetProductsHandler).Methods("GET", "POST")
	r.HandleFunc("/createproduct", s.CreateProductHandler).Methods("POST")
	r.HandleFunc("/updateproduct", s.UpdateProductHandler).Methods("POST")

	return r
}

func requestLogger(logger *utils.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Infof("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}

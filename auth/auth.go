package auth

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	registerHandler(w, r)
}
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	loginHandler(w, r)
}
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logoutHandler(w, r)
}
func GetAuth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	getAuthHandler(w, r)
}
func Profile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profileHandler(w, r, ps.ByName("id"))
}

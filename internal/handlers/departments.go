package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type department struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var departments = []department{
	{Code: "CSE", Name: "Computer Science and Engineering"},
	{Code: "EEE", Name: "Electrical and Electronic Engineering"},
	{Code: "CE", Name: "Civil Engineering"},
	{Code: "ME", Name: "Mechanical Engineering"},
	{Code: "TE", Name: "Textile Engineering"},
	{Code: "Architecture", Name: "Architecture"},
	{Code: "BBA", Name: "Business Administration"},
	{Code: "English", Name: "English"},
	{Code: "Law", Name: "Law"},
	{Code: "Administration", Name: "Administration"},
}

// GetDepartments returns the static campus department list.
func GetDepartments() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, departments)
	}
}

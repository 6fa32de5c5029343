package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptbill/client/internal/models"
)

type createUserRequest struct {
	Username    string      `json:"username" binding:"required"`
	Password    string      `json:"password" binding:"required,min=6"`
	Role        models.Role `json:"role" binding:"required"`
	ApartmentID *string     `json:"apartment_id"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListUsers())
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	houseID := currentAccount(c).HouseID
	user, err := s.store.CreateAccount(req.Username, hash, req.Role, req.ApartmentID, houseID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Username    string      `json:"username" binding:"required"`
	Password    *string     `json:"password"`
	Role        models.Role `json:"role" binding:"required"`
	ApartmentID *string     `json:"apartment_id"`
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var hash []byte
	if req.Password != nil {
		var err error
		hash, err = hashPassword(*req.Password)
		if err != nil {
			s.fail(c, err)
			return
		}
	}

	user, err := s.store.UpdateAccount(c.Param("id"), req.Username, hash, req.Role, req.ApartmentID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.store.DeleteAccount(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

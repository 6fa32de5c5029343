package stub

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptbill/client/internal/models"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrFloorInUse),
		errors.Is(err, ErrApartmentInUse),
		errors.Is(err, ErrBadTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := s.store.FindAccountByUsername(req.Username)
	if err != nil || !verifyPassword(req.Password, acc.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := issueToken(s.jwtSecret, acc.ID, acc.Role, s.jwtTTL)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  acc.User,
	})
}

type registerHouseAdminRequest struct {
	Username         string  `json:"username" binding:"required"`
	Password         string  `json:"password" binding:"required,min=6"`
	HouseName        string  `json:"house_name" binding:"required"`
	HouseAddress     string  `json:"house_address" binding:"required"`
	HouseDescription *string `json:"house_description"`
}

// handleRegisterHouseAdmin creates a house together with its first
// admin account.
func (s *Server) handleRegisterHouseAdmin(c *gin.Context) {
	var req registerHouseAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	house := s.store.CreateHouse(req.HouseName, req.HouseAddress, req.HouseDescription)
	user, err := s.store.CreateAccount(req.Username, hash, models.RoleHouseAdmin, nil, &house.ID)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"house": house,
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	acc := currentAccount(c)

	profile := models.Profile{
		ID:          acc.ID,
		Username:    acc.Username,
		Role:        acc.Role,
		ApartmentID: acc.ApartmentID,
		HouseID:     acc.HouseID,
	}
	if acc.ApartmentID != nil {
		if apt, err := s.store.GetApartment(*acc.ApartmentID); err == nil {
			profile.ApartmentNumber = &apt.ApartmentNumber
		}
	}
	if acc.HouseID != nil {
		if house, err := s.store.GetHouse(*acc.HouseID); err == nil {
			profile.HouseName = &house.Name
		}
	}

	c.JSON(http.StatusOK, profile)
}

type pushTokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}

func (s *Server) handleRegisterPushToken(c *gin.Context) {
	var req pushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.store.AddPushToken(currentAccount(c).ID, req.FCMToken)
	c.JSON(http.StatusOK, gin.H{"message": "push token registered"})
}

func (s *Server) handleUnregisterPushToken(c *gin.Context) {
	var req pushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.store.RemovePushToken(currentAccount(c).ID, req.FCMToken)
	c.JSON(http.StatusOK, gin.H{"message": "push token removed"})
}

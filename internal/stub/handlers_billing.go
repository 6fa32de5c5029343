package stub

import (
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"aptbill/client/internal/ids"
	"aptbill/client/internal/models"
)

type floorRequest struct {
	FloorNumber int     `json:"floor_number"`
	Description *string `json:"description"`
}

func (s *Server) handleListFloors(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListFloors())
}

func (s *Server) handleCreateFloor(c *gin.Context) {
	var req floorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s.store.CreateFloor(req.FloorNumber, req.Description))
}

func (s *Server) handleUpdateFloor(c *gin.Context) {
	var req floorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	floor, err := s.store.UpdateFloor(c.Param("id"), req.FloorNumber, req.Description)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, floor)
}

func (s *Server) handleDeleteFloor(c *gin.Context) {
	if err := s.store.DeleteFloor(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "floor deleted"})
}

type apartmentRequest struct {
	FloorID         string `json:"floor_id" binding:"required"`
	ApartmentNumber string `json:"apartment_number" binding:"required"`
	MeterNumber     string `json:"meter_number" binding:"required"`
}

func (s *Server) handleListApartments(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.ListApartments())
}

func (s *Server) handleCreateApartment(c *gin.Context) {
	var req apartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	apt, err := s.store.CreateApartment(req.FloorID, req.ApartmentNumber, req.MeterNumber)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}

func (s *Server) handleUpdateApartment(c *gin.Context) {
	var req apartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	apt, err := s.store.UpdateApartment(c.Param("id"), req.FloorID, req.ApartmentNumber, req.MeterNumber)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (s *Server) handleDeleteApartment(c *gin.Context) {
	if err := s.store.DeleteApartment(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "apartment deleted"})
}

type debtRequest struct {
	ApartmentID string  `json:"apartment_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

// handleListDebts scopes the list for tenants: a plain user with an
// apartment only sees that apartment's debts.
func (s *Server) handleListDebts(c *gin.Context) {
	debts := s.store.ListDebts()

	acc := currentAccount(c)
	if acc.Role == models.RoleUser && acc.ApartmentID != nil {
		scoped := make([]models.Debt, 0, len(debts))
		for _, d := range debts {
			if d.ApartmentID == *acc.ApartmentID {
				scoped = append(scoped, d)
			}
		}
		debts = scoped
	}
	c.JSON(http.StatusOK, debts)
}

func (s *Server) handleCreateDebt(c *gin.Context) {
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	debt, err := s.store.CreateDebt(req.ApartmentID, req.Amount, req.Description, req.DueDate)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, debt)
}

func (s *Server) handleUpdateDebt(c *gin.Context) {
	var req debtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	debt, err := s.store.UpdateDebt(c.Param("id"), req.ApartmentID, req.Amount, req.Description, req.DueDate)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, debt)
}

func (s *Server) handleDeleteDebt(c *gin.Context) {
	if err := s.store.DeleteDebt(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "debt deleted"})
}

func (s *Server) handleListPayments(c *gin.Context) {
	payments := s.store.ListPayments()

	acc := currentAccount(c)
	if acc.Role == models.RoleUser && acc.ApartmentID != nil {
		apt, err := s.store.GetApartment(*acc.ApartmentID)
		if err == nil {
			scoped := make([]models.Payment, 0, len(payments))
			for _, p := range payments {
				if p.ApartmentNumber != nil && *p.ApartmentNumber == apt.ApartmentNumber {
					scoped = append(scoped, p)
				}
			}
			payments = scoped
		}
	}
	c.JSON(http.StatusOK, payments)
}

// handleCreatePayment is the one multipart endpoint: debt_id, amount
// and notes as form values, an optional receipt file alongside.
func (s *Server) handleCreatePayment(c *gin.Context) {
	debtID := c.PostForm("debt_id")
	rawAmount := c.PostForm("amount")
	if debtID == "" || rawAmount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "debt_id and amount are required"})
		return
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}

	var notes *string
	if v := c.PostForm("notes"); v != "" {
		notes = &v
	}

	var receiptPath *string
	if file, err := c.FormFile("receipt"); err == nil {
		name := ids.New() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(s.uploadsDir, name)); err != nil {
			s.fail(c, err)
			return
		}
		receiptPath = &name
	}

	payment, err := s.store.CreatePayment(debtID, amount, notes, receiptPath)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

type paymentStatusRequest struct {
	Status models.PaymentStatus `json:"status" binding:"required"`
	Notes  *string              `json:"notes"`
}

func (s *Server) handleSetPaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SetPaymentStatus(c.Param("id"), req.Status, req.Notes, currentAccount(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment " + string(req.Status)})
}

func (s *Server) handleMetrics(c *gin.Context) {
	var start, end *string
	if v := c.Query("start_date"); v != "" {
		start = &v
	}
	if v := c.Query("end_date"); v != "" {
		end = &v
	}
	c.JSON(http.StatusOK, s.store.Metrics(start, end))
}

func (s *Server) handleHistory(c *gin.Context) {
	var apartmentID *string
	if v := c.Query("apartment_id"); v != "" {
		apartmentID = &v
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	c.JSON(http.StatusOK, s.store.History(apartmentID, limit, offset))
}

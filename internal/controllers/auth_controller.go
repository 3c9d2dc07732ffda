package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rescue_connect/internal/config"
	"rescue_connect/internal/middleware"
	"rescue_connect/internal/models"
)

var generalTypes = map[string]bool{
	"ngo":               true,
	"serviceable_group": true,
	"hostel":            true,
	"catering":          true,
	"school":            true,
	"college":           true,
	"old_age_home":      true,
	"orphanage_home":    true,
	"other_home":        true,
	"others":            true,
}

// SignupUser registers an account from a multipart form: identity fields,
// role-specific fields and a proof document upload.
func SignupUser(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	mobile := strings.TrimSpace(c.PostForm("mobile"))
	password := c.PostForm("password")

	if username == "" || email == "" || mobile == "" || password == "" || c.PostForm("role") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	role, err := validateAndNormalizeRole(c.PostForm("role"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	generalType := strings.TrimSpace(c.PostForm("generalType"))
	if role != "general" {
		generalType = ""
	} else if generalType != "" && !generalTypes[generalType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid general type"})
		return
	}

	proof, err := c.FormFile("proofDocument")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proofDocument is required"})
		return
	}

	// Pre-check duplicates so the common case gets a clean 409 message.
	var existing models.User
	err = config.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	proofRef, err := uploads.Save(proof)
	if err != nil {
		logrus.WithError(err).Error("failed to store proof document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store proof document"})
		return
	}

	user := models.User{
		Username:    username,
		Email:       email,
		Mobile:      mobile,
		Password:    hashedPassword,
		Role:        role,
		AccessLevel: accessLevelFor(role),
		GeneralType: generalType,
		VolunteerInfo: models.VolunteerInfo{
			VehicleNo:  c.PostForm("vehicleNo"),
			LicenseNo:  c.PostForm("licenseNo"),
			WhoTheyAre: c.PostForm("whoTheyAre"),
		},
		ProofDocument: proofRef,
	}
	if role != "volunteer" {
		user.VolunteerInfo = models.VolunteerInfo{}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		// Races past the pre-check still surface as unique violations.
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    prepareUserResponse(user),
	})
}

// LoginUser authenticates by username, password and the role picked on the
// login screen. A role mismatch is indistinguishable from bad credentials.
func LoginUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	role, err := validateAndNormalizeRole(body.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ? AND role = ?", body.Username, role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	resp := prepareUserResponse(user)
	resp["message"] = "Login successful"
	resp["token"] = token
	c.JSON(http.StatusOK, resp)
}

// ListUsers returns every account for the admin dashboard. Password hashes
// never serialize; see the User model tags.
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing users: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	// "others" is the legacy name for the admin dashboard role
	if role == "others" {
		role = "admin"
	}
	switch role {
	case "general", "volunteer", "admin", "public":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

// accessLevelFor derives the access tier stored alongside the role.
func accessLevelFor(role string) string {
	switch role {
	case "admin":
		return "super"
	case "volunteer":
		return "support"
	default:
		return "general"
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func prepareUserResponse(user models.User) gin.H {
	resp := gin.H{
		"userId":      user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"mobile":      user.Mobile,
		"role":        user.Role,
		"accessLevel": user.AccessLevel,
	}
	if user.GeneralType != "" {
		resp["generalType"] = user.GeneralType
	}
	if user.Role == "volunteer" {
		resp["volunteerInfo"] = gin.H{
			"vehicleNo":  user.VolunteerInfo.VehicleNo,
			"licenseNo":  user.VolunteerInfo.LicenseNo,
			"whoTheyAre": user.VolunteerInfo.WhoTheyAre,
		}
	}
	return resp
}

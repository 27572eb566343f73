package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Krishna1199000/propalai-backend/internal/http/response"
	s3store "github.com/Krishna1199000/propalai-backend/internal/platform/s3"
	"github.com/Krishna1199000/propalai-backend/internal/services"
)

var errIDAndEmailRequired = errors.New("id and email are required")

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondMapped(c, "get_me_failed", err)
		return
	}
	response.RespondOK(c, me)
}

// PUT /api/profile
// body: { "id": "...", "email": "...", "phone": "...", "password": "..." }
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		ID       string  `json:"id"`
		Email    string  `json:"email"`
		Phone    *string `json:"phone"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ID == "" || req.Email == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errIDAndEmailRequired)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := uh.userService.UpdateProfile(c.Request.Context(), services.ProfileInput{
		ID:       id,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.RespondMapped(c, "update_profile_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "user": user})
}

// POST /api/profile-image (multipart/form-data)
// field: "file"
func (uh *UserHandler) UploadProfileImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	contentType := fh.Header.Get("Content-Type")

	// The declared size and content type are checked before the body is
	// even read, so oversized or non-image uploads never reach the store.
	if err := s3store.ValidateUpload(int(fh.Size), contentType); err != nil {
		response.RespondMapped(c, "invalid_file", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, s3store.MaxUploadBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "read_file_failed", err)
		return
	}

	user, err := uh.userService.UploadProfileImage(c.Request.Context(), raw, contentType)
	if err != nil {
		response.RespondMapped(c, "upload_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"imageUrl": user.ProfileImageURL})
}

// POST /api/profile-image/presign
// body: { "content_type": "...", "size": 12345 }
func (uh *UserHandler) PresignProfileImage(c *gin.Context) {
	var req struct {
		ContentType string `json:"content_type"`
		Size        int    `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	presigned, err := uh.userService.PresignProfileImage(c.Request.Context(), req.ContentType, req.Size)
	if err != nil {
		response.RespondMapped(c, "presign_failed", err)
		return
	}
	response.RespondOK(c, presigned)
}

// POST /api/profile-image/confirm
// body: { "key": "..." }
func (uh *UserHandler) ConfirmProfileImage(c *gin.Context) {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.ConfirmProfileImage(c.Request.Context(), req.Key)
	if err != nil {
		response.RespondMapped(c, "confirm_image_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"imageUrl": user.ProfileImageURL})
}

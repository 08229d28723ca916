package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/session"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/upload"
	"github.com/tuanvumaihuynh/inventory-service/pkg/ptr"
)

const profileImageField = "profile_image"

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Service) register(w http.ResponseWriter, r *http.Request) error {
	var (
		req          registerRequest
		profileImage *upload.Image
	)

	if isMultipart(r) {
		if err := s.parseMultipart(w, r); err != nil {
			return err
		}
		f := newForm(r)
		req = registerRequest{
			Name:     ptr.Value(f.text("name")),
			Phone:    ptr.Value(f.text("phone")),
			Email:    ptr.Value(f.text("email")),
			Password: ptr.Value(f.text("password")),
		}
		if err := s.validator.Validate(req); err != nil {
			return err
		}

		images, closeImages, err := s.formImages(r, profileImageField)
		defer closeImages()
		if err != nil {
			return err
		}
		if len(images) > 1 {
			return apperr.TooManyFilesErr.WithMsg("only one profile image may be uploaded")
		}
		if len(images) == 1 {
			profileImage = &images[0]
		}
	} else if err := s.decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := s.deps.AuthSvc.Register(r.Context(), service.RegisterParams{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: profileImage,
		BaseURL:      s.baseURL(r),
	})
	if err != nil {
		return fmt.Errorf("auth service register: %w", err)
	}

	return writeJSON(w, http.StatusCreated, userResponse{
		Message: "user created successfully",
		User:    user,
	})
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := s.decodeJSON(r, &req); err != nil {
		return err
	}

	res, err := s.deps.AuthSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("auth service login: %w", err)
	}
	if !res.Authenticated {
		return apperr.InvalidCredentialsErr.WithMsg(res.Reason)
	}

	if _, err := s.deps.Sessions.Establish(r.Context(), w, res.User.ID); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	return writeJSON(w, http.StatusOK, loginResponse{
		Status:  "successful",
		Message: "Login successful!",
		User:    res.User,
	})
}

func (s *Service) me(w http.ResponseWriter, r *http.Request) error {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		return apperr.UnauthorizedErr
	}

	user, err := s.deps.AuthSvc.ResolveSession(r.Context(), userID)
	if err != nil {
		return fmt.Errorf("auth service resolve session: %w", err)
	}

	return writeJSON(w, http.StatusOK, userResponse{
		Message: "user retrieved successfully",
		User:    user,
	})
}

func (s *Service) listUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := s.deps.AuthSvc.ListUsers(r.Context())
	if err != nil {
		return fmt.Errorf("auth service list users: %w", err)
	}

	return writeJSON(w, http.StatusOK, usersResponse{
		Message: "users retrieved successfully",
		Users:   users,
	})
}

func (s *Service) getUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	user, err := s.deps.AuthSvc.GetUser(r.Context(), id)
	if err != nil {
		return fmt.Errorf("auth service get user: %w", err)
	}

	return writeJSON(w, http.StatusOK, userResponse{
		Message: "user retrieved successfully",
		User:    user,
	})
}

package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"tacotown/models"
	"tacotown/utils"
)

// ContactController handles contact-form submissions
type ContactController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
	ShopEmail    string
	Log          *slog.Logger
}

func NewContactController(client *mongo.Client, emailService *utils.EmailService, shopEmail string, log *slog.Logger) *ContactController {
	collection := client.Database("tacotown").Collection("contact_messages")
	return &ContactController{
		Collection:   collection,
		EmailService: emailService,
		ShopEmail:    shopEmail,
		Log:          log,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact stores the message and forwards it to the shop inbox.
func (cc *ContactController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	msg := models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if _, err := cc.Collection.InsertOne(ctx, msg); err != nil {
		cc.Log.Error("insert contact message failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save message")
		return
	}

	if cc.ShopEmail != "" {
		go func(m models.ContactMessage) {
			if err := cc.EmailService.SendContactMessage(cc.ShopEmail, m); err != nil {
				cc.Log.Warn("contact forward email failed", "error", err)
			}
		}(msg)
	}

	respondSuccess(w, "Message received successfully! We will get back to you soon.", nil)
}

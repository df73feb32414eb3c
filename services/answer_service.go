package services

import (
	"errors"
	"log"
	"strings"

	"bounty-board/models"
	"bounty-board/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerService struct {
	DB *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{DB: db}
}

var (
	errBountyNotFound = errors.New("bounty not found")
	errAnswerNotFound = errors.New("answer not found")
)

// notFoundStatus maps the accept/unaccept sentinel errors onto a 404 body.
// ok is false for storage failures that should surface as a 500 instead.
func notFoundStatus(c *fiber.Ctx, err error) (error, bool) {
	switch {
	case errors.Is(err, errBountyNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bounty not found"}), true
	case errors.Is(err, errAnswerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "answer not found"}), true
	}
	return nil, false
}

// lockForUpdate takes a row lock on Postgres. SQLite (used in tests) has a
// single writer and rejects FOR UPDATE, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateAnswer attaches a new answer to a bounty. Accepts either a JSON body
// ({content, imageUrl?}) or a multipart form with a "content" field and an
// optional "image" file, which is uploaded to R2 (or saved locally when R2
// is not configured). Submitting an answer never changes bounty status.
func (s *AnswerService) CreateAnswer(c *fiber.Ctx) error {
	bountyID := c.Params("bountyId")

	var bounty models.Bounty
	if err := s.DB.First(&bounty, "id = ?", bountyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bounty not found"})
		}
		log.Printf("❌ Failed to fetch bounty %s: %v", bountyID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch bounty"})
	}

	var content string
	var imageURL *string

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		content = c.FormValue("content")

		if imageFile, err := c.FormFile("image"); err == nil && imageFile.Size > 0 {
			if imageFile.Size > 10*1024*1024 { // 10MB
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image too large (max 10MB)"})
			}

			key := utils.ImageObjectKey(imageFile.Filename)
			if utils.R2Enabled() {
				url, err := utils.UploadFileToR2(imageFile, key)
				if err != nil {
					log.Printf("❌ Failed to upload answer image to R2: %v", err)
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload image"})
				}
				imageURL = &url
			} else {
				localPath := utils.GetUploadPath(key)
				if err := utils.SaveFile(imageFile, localPath); err != nil {
					log.Printf("❌ Failed to save answer image locally: %v", err)
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save image"})
				}
				url := "/" + strings.ReplaceAll(localPath, "\\", "/")
				imageURL = &url
			}
		}
	} else {
		var req struct {
			Content  string  `json:"content"`
			ImageURL *string `json:"imageUrl"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		content = req.Content
		imageURL = req.ImageURL
	}

	if content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	answer := &models.Answer{
		ID:       uuid.NewString(),
		BountyID: bounty.ID,
		Content:  content,
		ImageURL: imageURL,
	}

	if err := s.DB.Create(answer).Error; err != nil {
		log.Printf("❌ Failed to create answer for bounty %s: %v", bountyID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create answer"})
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

// AcceptAnswer marks an answer accepted and moves the bounty to answered.
// Accepting an already-accepted answer is a no-op. Other accepted answers are
// left untouched; several may coexist on one bounty.
func (s *AnswerService) AcceptAnswer(c *fiber.Ctx) error {
	bountyID := c.Params("bountyId")
	answerID := c.Params("answerId")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bounty models.Bounty
		if err := lockForUpdate(tx).First(&bounty, "id = ?", bountyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBountyNotFound
			}
			return err
		}

		var answer models.Answer
		if err := tx.First(&answer, "id = ? AND bounty_id = ?", answerID, bountyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAnswerNotFound
			}
			return err
		}

		if !answer.Accepted {
			if err := tx.Model(&answer).Update("accepted", true).Error; err != nil {
				return err
			}
		}
		if bounty.Status != models.BountyStatusAnswered {
			if err := tx.Model(&bounty).Update("status", models.BountyStatusAnswered).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if resp, ok := notFoundStatus(c, err); ok {
			return resp
		}
		log.Printf("❌ Failed to accept answer %s on bounty %s: %v", answerID, bountyID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to accept answer"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// UnacceptAnswer clears an answer's accepted flag and reopens the bounty only
// when no other accepted answers remain. The count and the status write run
// in one transaction with the bounty row locked, so an accept interleaving on
// a sibling answer cannot leave the status contradicting the answer set.
func (s *AnswerService) UnacceptAnswer(c *fiber.Ctx) error {
	bountyID := c.Params("bountyId")
	answerID := c.Params("answerId")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bounty models.Bounty
		if err := lockForUpdate(tx).First(&bounty, "id = ?", bountyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBountyNotFound
			}
			return err
		}

		var answer models.Answer
		if err := tx.First(&answer, "id = ? AND bounty_id = ?", answerID, bountyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAnswerNotFound
			}
			return err
		}

		if answer.Accepted {
			if err := tx.Model(&answer).Update("accepted", false).Error; err != nil {
				return err
			}
		}

		var remaining int64
		if err := tx.Model(&models.Answer{}).
			Where("bounty_id = ? AND accepted = ? AND id <> ?", bountyID, true, answerID).
			Count(&remaining).Error; err != nil {
			return err
		}

		status := models.BountyStatusAnswered
		if remaining == 0 {
			status = models.BountyStatusOpen
		}
		if bounty.Status != status {
			if err := tx.Model(&bounty).Update("status", status).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		if resp, ok := notFoundStatus(c, err); ok {
			return resp
		}
		log.Printf("❌ Failed to unaccept answer %s on bounty %s: %v", answerID, bountyID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to unaccept answer"})
	}

	return c.JSON(fiber.Map{"success": true})
}

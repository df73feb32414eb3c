package services

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"bounty-board/models"
	"bounty-board/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BountyService struct {
	DB *gorm.DB

	// DefaultExpiryMinutes applies when a create request omits expiryMinutes
	// entirely. nil means bounties without an explicit expiry never expire.
	DefaultExpiryMinutes *int
}

func NewBountyService(db *gorm.DB, defaultExpiryMinutes *int) *BountyService {
	return &BountyService{DB: db, DefaultExpiryMinutes: defaultExpiryMinutes}
}

// createBountyRequest keeps expiryMinutes raw so an absent key (use the
// configured default) can be told apart from an explicit null (never expires).
type createBountyRequest struct {
	Question      string          `json:"question"`
	Reward        *float64        `json:"reward"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	ExpiryMinutes json.RawMessage `json:"expiryMinutes"`
}

// CreateBounty persists a new open bounty pinned to the given coordinates.
func (s *BountyService) CreateBounty(c *fiber.Ctx) error {
	var req createBountyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
	}
	if req.Latitude == nil || req.Longitude == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "latitude and longitude are required"})
	}

	reward := 0.0
	if req.Reward != nil {
		if *req.Reward < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward must be non-negative"})
		}
		reward = *req.Reward
	}

	expiryMinutes := s.DefaultExpiryMinutes
	if len(req.ExpiryMinutes) > 0 {
		// Key was present: null disables expiry, anything else must be a
		// positive integer minute count.
		if string(req.ExpiryMinutes) == "null" {
			expiryMinutes = nil
		} else {
			n, err := strconv.Atoi(string(req.ExpiryMinutes))
			if err != nil || n <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expiryMinutes must be a positive integer"})
			}
			expiryMinutes = &n
		}
	}

	bounty := &models.Bounty{
		ID:            uuid.NewString(),
		Question:      req.Question,
		Reward:        reward,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		ExpiryMinutes: expiryMinutes,
		Status:        models.BountyStatusOpen,
		Answers:       []models.Answer{},
	}

	if err := s.DB.Create(bounty).Error; err != nil {
		log.Printf("❌ Failed to create bounty: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create bounty"})
	}

	bounty.Remaining = utils.RemainingLabel(bounty.ExpiryMinutes, bounty.CreatedAt, time.Now())
	return c.Status(fiber.StatusCreated).JSON(bounty)
}

// GetAllBounties lists bounties newest first with answers attached. By
// default only active bounties are returned; pass ?filter=all for the full
// history. Optional minLat/maxLat/minLng/maxLng params narrow the result to
// a map viewport.
func (s *BountyService) GetAllBounties(c *fiber.Ctx) error {
	bounds, boundsSet, err := parseBounds(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var bounties []models.Bounty
	err = s.DB.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Order("created_at DESC").
		Find(&bounties).Error
	if err != nil {
		log.Printf("❌ Failed to fetch bounties: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch bounties"})
	}

	now := time.Now()
	includeExpired := c.Query("filter") == "all"

	result := make([]models.Bounty, 0, len(bounties))
	var newlyExpiredIDs []string
	for _, b := range bounties {
		expired := utils.IsExpired(b.ExpiryMinutes, b.CreatedAt, now)
		if expired && !b.Expired {
			newlyExpiredIDs = append(newlyExpiredIDs, b.ID)
		}
		if expired && !includeExpired {
			continue
		}
		b.Expired = expired
		b.Remaining = utils.RemainingLabel(b.ExpiryMinutes, b.CreatedAt, now)
		if b.Answers == nil {
			b.Answers = []models.Answer{}
		}
		result = append(result, b)
	}

	// Opportunistic cache update for freshly expired rows. Never load-bearing:
	// the filter above already decided from the timestamps.
	if len(newlyExpiredIDs) > 0 {
		if err := s.DB.Model(&models.Bounty{}).
			Where("id IN ?", newlyExpiredIDs).
			Update("expired", true).Error; err != nil {
			log.Printf("⚠️  Failed to flag %d expired bounties: %v", len(newlyExpiredIDs), err)
		}
	}

	if boundsSet {
		result = utils.FilterBountiesByBounds(result, bounds)
	}

	return c.JSON(result)
}

// GetBountyByID returns a single bounty with its answers in creation order.
func (s *BountyService) GetBountyByID(c *fiber.Ctx) error {
	id := c.Params("bountyId")

	var bounty models.Bounty
	err := s.DB.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		First(&bounty, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bounty not found"})
		}
		log.Printf("❌ Failed to fetch bounty %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch bounty"})
	}

	now := time.Now()
	bounty.Expired = utils.IsExpired(bounty.ExpiryMinutes, bounty.CreatedAt, now)
	bounty.Remaining = utils.RemainingLabel(bounty.ExpiryMinutes, bounty.CreatedAt, now)
	if bounty.Answers == nil {
		bounty.Answers = []models.Answer{}
	}

	return c.JSON(bounty)
}

// parseBounds reads the optional viewport params. ok is false when none were
// supplied; supplying only some of the four is an error.
func parseBounds(c *fiber.Ctx) (utils.Bounds, bool, error) {
	raw := [4]string{c.Query("minLat"), c.Query("maxLat"), c.Query("minLng"), c.Query("maxLng")}
	present := 0
	for _, v := range raw {
		if v != "" {
			present++
		}
	}
	if present == 0 {
		return utils.Bounds{}, false, nil
	}
	if present != 4 {
		return utils.Bounds{}, false, errors.New("minLat, maxLat, minLng and maxLng must all be provided")
	}

	var vals [4]float64
	for i, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return utils.Bounds{}, false, errors.New("viewport bounds must be numbers")
		}
		vals[i] = f
	}
	return utils.Bounds{MinLat: vals[0], MaxLat: vals[1], MinLng: vals[2], MaxLng: vals[3]}, true, nil
}

// handlers/bounty.go
package handlers

import (
	"bounty-board/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(app *fiber.App, bountyService *services.BountyService, answerService *services.AnswerService) {
	app.Post("/bounties", bountyService.CreateBounty)
	app.Get("/bounties", bountyService.GetAllBounties)
	app.Get("/bounties/:bountyId", bountyService.GetBountyByID)

	app.Post("/bounties/:bountyId/answers", answerService.CreateAnswer)
	app.Post("/bounties/:bountyId/answers/:answerId/accept", answerService.AcceptAnswer)
	app.Post("/bounties/:bountyId/answers/:answerId/unaccept", answerService.UnacceptAnswer)
}

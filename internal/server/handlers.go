package server

import (
	"github.com/gofiber/fiber/v2"

	"taskflow/internal/api"
	"taskflow/internal/service"
)

// health handles GET /health.
func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(api.OK(fiber.Map{"status": "ok"}, ""))
}

// listTasks handles GET /api/tasks.
func (s *Server) listTasks(c *fiber.Ctx) error {
	tasks, err := s.svc.ListTasks(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(api.OK(tasks, ""))
}

// getTask handles GET /api/tasks/:id.
func (s *Server) getTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return s.fail(c, service.ErrNotFound)
	}

	task, err := s.svc.GetTask(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(api.OK(task, ""))
}

// createTask handles POST /api/tasks.
func (s *Server) createTask(c *fiber.Ctx) error {
	var req api.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(api.Fail(api.MsgInvalidBody))
	}

	task, msg, err := s.svc.CreateTask(c.UserContext(), req.Text)
	if err != nil {
		return s.fail(c, err)
	}

	s.logger.Debug("task created", "id", task.ID)
	c.Location(api.TaskPath(task.ID))
	return c.Status(fiber.StatusCreated).JSON(api.OK(task, msg))
}

// updateTask handles PUT /api/tasks/:id.
func (s *Server) updateTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return s.fail(c, service.ErrNotFound)
	}

	var req api.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(api.Fail(api.MsgInvalidBody))
	}

	task, msg, err := s.svc.UpdateTask(c.UserContext(), id, service.UpdateRequest{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(api.OK(task, msg))
}

// deleteTask handles DELETE /api/tasks/:id.
func (s *Server) deleteTask(c *fiber.Ctx) error {
	id, ok := taskID(c)
	if !ok {
		return s.fail(c, service.ErrNotFound)
	}

	msg, err := s.svc.DeleteTask(c.UserContext(), id)
	if err != nil {
		return s.fail(c, err)
	}

	s.logger.Debug("task deleted", "id", id)
	return c.JSON(api.OK(nil, msg))
}

// stats handles GET /api/tasks/stats.
func (s *Server) stats(c *fiber.Ctx) error {
	stats, err := s.svc.Stats(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(api.OK(stats, ""))
}

// taskID reads the :id parameter. Ids are positive.
func taskID(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

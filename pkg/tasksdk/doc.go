/*
Package tasksdk is a Go client for the taskboard HTTP API.

Use a Client for the public endpoints and to open a Session:

	client := tasksdk.NewClient("http://localhost:3001")

	session, err := client.Register(ctx, tasksdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})

A Session carries the bearer token and exposes the caller's tasks:

	task, err := session.CreateTask(ctx, tasksdk.CreateTaskRequest{Title: "Buy milk"})

	done := "completed"
	task, err = session.UpdateTask(ctx, task.ID, tasksdk.UpdateTaskRequest{Status: &done})

	tasks, err := session.ListTasks(ctx, tasksdk.ListTasksOptions{Status: "completed"})

# Errors

Every non-success response is returned as an *APIError. Use IsNotFound,
IsUnauthorized, IsForbidden and IsValidation to branch on it:

	if _, err := session.GetTask(ctx, 42); tasksdk.IsNotFound(err) {
		// missing, or owned by someone else
	}
*/
package tasksdk

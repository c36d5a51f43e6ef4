package tasks

//go:generate swag init --dir ../../ --generalInfo internal/tasks/http/router.go --output . --outputTypes go --parseInternal

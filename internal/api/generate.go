package api

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=mocks/service_mock.go github.com/verdicthq/verdict/internal/api Service

package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetProjectID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "project_id", "Project")
}

func GetPartID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "part_id", "Part")
}

func GetOrderID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "order_id", "Order")
}

func GetOrderItemID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "item_id", "Order item")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "user_id", "User")
}

func getIDParam(ctx *gin.Context, name string, label string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return uint(id), nil
}

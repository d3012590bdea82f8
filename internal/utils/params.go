package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pathID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "project_id")
}

func GetIssueID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "issue_id")
}

func GetCommentID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "comment_id")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return pathID(ctx, "user_id")
}

func GetProjectIssueID(ctx *gin.Context) (uint, uint, error) {
	projectID, err := GetProjectID(ctx)

	if err != nil {
		return 0, 0, err
	}

	issueID, err := GetIssueID(ctx)

	if err != nil {
		return 0, 0, err
	}

	return projectID, issueID, nil
}

func GetProjectIssueCommentID(ctx *gin.Context) (uint, uint, uint, error) {
	projectID, issueID, err := GetProjectIssueID(ctx)

	if err != nil {
		return 0, 0, 0, err
	}

	commentID, err := GetCommentID(ctx)

	if err != nil {
		return 0, 0, 0, err
	}

	return projectID, issueID, commentID, nil
}

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dlanguage-api/internal/constants"
	"github.com/dlanguage-api/internal/models"
)

// CourseDetailTTL 课程详情缓存时间
const CourseDetailTTL = 5 * time.Minute

func courseDetailKey(courseID uint) string {
	return fmt.Sprintf(constants.CacheKeyCourseDetail, courseID)
}

// GetCourseDetail 读取课程详情缓存
func GetCourseDetail(ctx context.Context, courseID uint) (*models.Course, bool, error) {
	if courseID == 0 {
		return nil, false, nil
	}
	var course models.Course
	hit, err := GetJSON(ctx, courseDetailKey(courseID), &course)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &course, true, nil
}

// SetCourseDetail 写入课程详情缓存
func SetCourseDetail(ctx context.Context, course *models.Course) error {
	if course == nil || course.ID == 0 {
		return nil
	}
	return SetJSON(ctx, courseDetailKey(course.ID), course, CourseDetailTTL)
}

// DelCourseDetail 课程变更后失效缓存
func DelCourseDetail(ctx context.Context, courseID uint) error {
	if courseID == 0 {
		return nil
	}
	return Del(ctx, courseDetailKey(courseID))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

func newNotificationFixture(t *testing.T) NotificationService {
	t.Helper()
	db := setupServiceDB(t)
	return NewNotificationService(repository.NewNotificationRepository(db), nil, "", nil, testValidator(), testLogger())
}

func TestNotificationServiceStreamsToOfficeAndAllChannels(t *testing.T) {
	svc := newNotificationFixture(t)

	office, stopOffice := svc.Subscribe(OfficeChannel(2))
	defer stopOffice()
	other, stopOther := svc.Subscribe(OfficeChannel(3))
	defer stopOther()
	all, stopAll := svc.Subscribe(AllOffices)
	defer stopAll()

	published, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		StudentID:   5,
		StudentName: "Salma Idrissi",
		OfficeID:    2,
		Type:        "completion",
		Message:     "<b>Salma Idrissi</b> has passed all required exams.",
	})
	require.NoError(t, err)
	require.Equal(t, "Salma Idrissi has passed all required exams.", published.Message)

	select {
	case got := <-office:
		require.Equal(t, published.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("office subscriber did not receive the notification")
	}

	select {
	case got := <-all:
		require.Equal(t, published.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("all-offices subscriber did not receive the notification")
	}

	select {
	case <-other:
		t.Fatal("notification leaked to another office")
	default:
	}
}

func TestNotificationServiceMarkReadRespectsOffice(t *testing.T) {
	svc := newNotificationFixture(t)
	ctx := context.Background()

	published, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		StudentID:   1,
		StudentName: "Karim Bennani",
		OfficeID:    1,
		Type:        "payment_due",
		Message:     "Collect remaining 200.00 DH from Karim Bennani to archive their file.",
	})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, published.ID, officePtr(9))
	require.ErrorIs(t, err, ErrNotificationNotFound)

	read, err := svc.MarkRead(ctx, published.ID, officePtr(1))
	require.NoError(t, err)
	require.True(t, read.Read)

	unread, err := svc.List(ctx, dto.NotificationListRequest{OfficeID: officePtr(1), UnreadOnly: true})
	require.NoError(t, err)
	require.Empty(t, unread)
}

func TestNotificationServiceMarkAllRead(t *testing.T) {
	svc := newNotificationFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Publish(ctx, dto.NotificationCreateRequest{
			StudentID: uint(i + 1), StudentName: "Student", OfficeID: 1, Type: "completion", Message: "done",
		})
		require.NoError(t, err)
	}

	updated, err := svc.MarkAllRead(ctx, officePtr(1))
	require.NoError(t, err)
	require.Equal(t, int64(3), updated)
}

func TestNotificationServiceRejectsEmptyMessage(t *testing.T) {
	svc := newNotificationFixture(t)

	_, err := svc.Publish(context.Background(), dto.NotificationCreateRequest{
		StudentID: 1, StudentName: "Student", OfficeID: 1, Type: "completion", Message: "<script></script>",
	})
	require.Error(t, err)
}

func TestNotificationServiceStoresLiteralText(t *testing.T) {
	svc := newNotificationFixture(t)
	ctx := context.Background()
	message := "Salma Idrissi's file has been archived after final payment."

	published, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		StudentID: 5, StudentName: "Salma Idrissi", OfficeID: 2, Type: "completion", Message: message,
	})
	require.NoError(t, err)
	require.Equal(t, message, published.Message)

	feed, err := svc.List(ctx, dto.NotificationListRequest{OfficeID: officePtr(2)})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, message, feed[0].Message)

	mixed, err := svc.Publish(ctx, dto.NotificationCreateRequest{
		StudentID: 6, StudentName: "Ali & Sons", OfficeID: 2, Type: "completion", Message: "<em>Ali & Sons</em> has passed all required exams.",
	})
	require.NoError(t, err)
	require.Equal(t, "Ali & Sons has passed all required exams.", mixed.Message)
}

func TestNotificationUnsubscribeClosesChannel(t *testing.T) {
	svc := newNotificationFixture(t)

	ch, stop := svc.Subscribe(OfficeChannel(1))
	stop()
	stop()

	_, open := <-ch
	require.False(t, open)
}
